// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"gofps/cvar"
)

var (
	ClientBackSpeed    *cvar.Cvar
	ClientForwardSpeed *cvar.Cvar
	ClientMaxPitch     *cvar.Cvar
	ClientMinPitch     *cvar.Cvar
	ClientPitchSpeed   *cvar.Cvar
	ClientSideSpeed    *cvar.Cvar
	ClientYawSpeed     *cvar.Cvar
	Developer          *cvar.Cvar
	Fov                *cvar.Cvar
	GlFarClip          *cvar.Cvar
	GlNearClip         *cvar.Cvar
	RPortalCull        *cvar.Cvar
	RShowCells         *cvar.Cvar
	VideoBorderLess    *cvar.Cvar
	VideoFsaa          *cvar.Cvar
	VideoFullscreen    *cvar.Cvar
	VideoHeight        *cvar.Cvar
	VideoWidth         *cvar.Cvar
	VideoVerticalSync  *cvar.Cvar
)

func init() {
	ClientBackSpeed = cvar.MustRegister("cl_backspeed", "4", cvar.ARCHIVE)
	ClientForwardSpeed = cvar.MustRegister("cl_forwardspeed", "4", cvar.ARCHIVE)
	ClientMaxPitch = cvar.MustRegister("cl_maxpitch", "90", cvar.ARCHIVE)
	ClientMinPitch = cvar.MustRegister("cl_minpitch", "-90", cvar.ARCHIVE)
	ClientPitchSpeed = cvar.MustRegister("cl_pitchspeed", "150", cvar.NONE)
	ClientSideSpeed = cvar.MustRegister("cl_sidespeed", "3.5", cvar.NONE)
	ClientYawSpeed = cvar.MustRegister("cl_yawspeed", "140", cvar.NONE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	Fov = cvar.MustRegister("fov", "90", cvar.NONE)
	GlFarClip = cvar.MustRegister("gl_farclip", "1024", cvar.ARCHIVE)
	GlNearClip = cvar.MustRegister("gl_nearclip", "0.05", cvar.ARCHIVE)
	RPortalCull = cvar.MustRegister("r_portalcull", "1", cvar.ARCHIVE)
	RShowCells = cvar.MustRegister("r_showcells", "0", cvar.NONE) // log the visible cells each frame
	VideoBorderLess = cvar.MustRegister("vid_borderless", "0", cvar.ARCHIVE)
	VideoFsaa = cvar.MustRegister("vid_fsaa", "0", cvar.ARCHIVE)
	VideoFullscreen = cvar.MustRegister("vid_fullscreen", "0", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "600", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "800", cvar.ARCHIVE)
	VideoVerticalSync = cvar.MustRegister("vid_vsync", "1", cvar.ARCHIVE)
}

// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"hash/fnv"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"gofps/level"
)

const (
	vertexCellSource = `
#version 330
layout (location = 0) in vec3 position;
uniform mat4 projection;
uniform mat4 modelview;

void main() {
	gl_Position = projection * modelview * vec4(position, 1.0);
}
` + "\x00"

	fragmentCellSource = `
#version 330
uniform vec4 color;
out vec4 frag_color;

void main() {
	frag_color = color;
}
` + "\x00"
)

// CellDrawer owns the program all cell meshes are drawn with.
type CellDrawer struct {
	prog       *Program
	projection int32
	modelview  int32
	color      int32
}

func NewCellDrawer() (*CellDrawer, error) {
	p, err := NewProgram(vertexCellSource, fragmentCellSource)
	if err != nil {
		return nil, err
	}
	return &CellDrawer{
		prog:       p,
		projection: p.GetUniformLocation("projection"),
		modelview:  p.GetUniformLocation("modelview"),
		color:      p.GetUniformLocation("color"),
	}, nil
}

// Begin prepares drawing of a frame. Meshes must only be drawn between
// Begin and the next buffer swap.
func (d *CellDrawer) Begin(projection, modelview mgl32.Mat4) {
	d.prog.Use()
	SetMatrix(d.projection, projection)
	SetMatrix(d.modelview, modelview)
}

// Mesh is the uploaded floor geometry of one cell.
type Mesh struct {
	d     *CellDrawer
	vao   *VertexArray
	vbo   *Buffer
	count int32
	color mgl32.Vec4
}

// NewMesh uploads the triangles of c. It is a level.PayloadFunc.
func (d *CellDrawer) NewMesh(c *level.CellData) (*Mesh, error) {
	m := &Mesh{
		d:     d,
		vao:   NewVertexArray(),
		vbo:   NewBuffer(ArrayBuffer),
		count: int32(len(c.Triangles) / 3),
		color: cellColor(c.ID),
	}
	if m.count == 0 {
		return m, nil
	}
	m.vao.Bind()
	m.vbo.Bind()
	m.vbo.SetData(4*len(c.Triangles), gl.Ptr(c.Triangles))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 4*3, 0)
	gl.BindVertexArray(0)
	return m, nil
}

func (m *Mesh) Draw() {
	if m.count == 0 {
		return
	}
	SetColor(m.d.color, m.color)
	m.vao.Bind()
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// cellColor picks a stable color per cell so neighbors can be told apart.
func cellColor(id string) mgl32.Vec4 {
	h := fnv.New32a()
	h.Write([]byte(id))
	s := h.Sum32()
	return mgl32.Vec4{
		0.3 + 0.7*float32(s&0xff)/255,
		0.3 + 0.7*float32((s>>8)&0xff)/255,
		0.3 + 0.7*float32((s>>16)&0xff)/255,
		1,
	}
}

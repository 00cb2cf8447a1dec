// Package renderer provides OpenGL rendering for the water slab.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/waveforge/fluidsim/internal/engine/shader"
	"github.com/waveforge/fluidsim/internal/engine/water"
	"github.com/waveforge/fluidsim/internal/logger"
	"github.com/waveforge/fluidsim/pkg/math"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
	vec4 worldPos = uModel * vec4(aPos, 1.0);
	vWorldPos = worldPos.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProj * uView * worldPos;
}
`

// Toon shading: lambert term quantized into discrete steps.
const fragmentShaderSource = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;

out vec4 fragColor;

uniform vec3 uCamPos;
uniform vec3 uLightPos;
uniform int uSteps;
uniform vec3 uDarkColor;
uniform vec3 uLightColor;

void main() {
	vec3 normal = normalize(vNormal);
	vec3 lightDir = normalize(uLightPos - vWorldPos);
	float lambert = max(dot(normal, lightDir), 0.0);
	float toonLevel = floor(lambert * float(uSteps)) / float(uSteps);
	vec3 color = mix(uDarkColor, uLightColor, toonLevel);
	fragColor = vec4(color, 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer owns the GL state for the water shell: one dynamic vertex buffer
// sized once from the immutable vertex count, one static index buffer, and
// the toon shader.
type Renderer struct {
	config Config

	program uint32

	locModel      int32
	locView       int32
	locProj       int32
	locCamPos     int32
	locLightPos   int32
	locSteps      int32
	locDarkColor  int32
	locLightColor int32

	vao uint32
	vbo uint32
	ebo uint32

	vertexCapacity int
	indexCount     int32

	// Lighting
	LightPos   math.Vec3
	Steps      int32
	DarkColor  math.Vec3
	LightColor math.Vec3

	// Reused pixel readback buffer for capture.
	pixels []byte
}

// New creates a renderer for the given volume. Must be called after the
// OpenGL context exists. The vertex buffer capacity is fixed here; later
// uploads never resize it.
func New(cfg Config, vol *water.Volume) (*Renderer, error) {
	r := &Renderer{
		config:     cfg,
		LightPos:   math.Vec3{X: 80, Y: 80, Z: 80},
		Steps:      3,
		DarkColor:  math.Vec3{X: 0, Y: 0, Z: 0.5},
		LightColor: math.Vec3{X: 0.3, Y: 0.6, Z: 1.0},
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.3, 0.5, 1.0, 1.0) // Sky blue background

	program, err := shader.CompileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("water shader: %w", err)
	}
	r.program = program

	r.locModel = shader.GetUniform(program, "uModel")
	r.locView = shader.GetUniform(program, "uView")
	r.locProj = shader.GetUniform(program, "uProj")
	r.locCamPos = shader.GetUniform(program, "uCamPos")
	r.locLightPos = shader.GetUniform(program, "uLightPos")
	r.locSteps = shader.GetUniform(program, "uSteps")
	r.locDarkColor = shader.GetUniform(program, "uDarkColor")
	r.locLightColor = shader.GetUniform(program, "uLightColor")

	r.createBuffers(vol)

	return r, nil
}

// createBuffers allocates the VAO/VBO/EBO. The vertex buffer uses
// DYNAMIC_DRAW since it is rewritten every frame; the index buffer never
// changes.
func (r *Renderer) createBuffers(vol *water.Volume) {
	verts := vol.Vertices()
	indices := vol.Indices()
	r.vertexCapacity = len(verts)
	r.indexCount = int32(len(indices))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*water.VertexSize, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)

	// Position attribute (location = 0), normal after it (location = 1)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, water.VertexSize, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, water.VertexSize, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	logger.Debug("water buffers created",
		zap.Int("vertices", r.vertexCapacity),
		zap.Int32("indices", r.indexCount),
	)
}

// UploadVertices copies the current vertex array into the GPU buffer.
// BufferSubData rewrites the contents without reallocating; the buffer
// capacity was fixed at creation.
func (r *Renderer) UploadVertices(verts []water.Vertex) {
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*water.VertexSize, unsafe.Pointer(&verts[0]))
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	if height == 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current width/height ratio.
func (r *Renderer) Aspect() float32 {
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawWater renders the slab with the toon shader.
func (r *Renderer) DrawWater(view, proj math.Mat4, camPos math.Vec3) {
	gl.UseProgram(r.program)

	model := math.Identity()
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locProj, 1, false, proj.Ptr())

	gl.Uniform3f(r.locCamPos, camPos.X, camPos.Y, camPos.Z)
	gl.Uniform3f(r.locLightPos, r.LightPos.X, r.LightPos.Y, r.LightPos.Z)
	gl.Uniform1i(r.locSteps, r.Steps)
	gl.Uniform3f(r.locDarkColor, r.DarkColor.X, r.DarkColor.Y, r.DarkColor.Z)
	gl.Uniform3f(r.locLightColor, r.LightColor.X, r.LightColor.Y, r.LightColor.Z)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReadPixels reads the current framebuffer as RGBA bytes, reusing an
// internal buffer between calls.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	need := w * h * 4
	if cap(r.pixels) < need {
		r.pixels = make([]byte, need)
	}
	r.pixels = r.pixels[:need]
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&r.pixels[0]))
	return r.pixels, w, h
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

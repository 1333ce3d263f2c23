package main

import (
	_ "embed"
	"fmt"
	"log"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/qjulia/render"
)

//go:embed shaders/display.vert
var displayVertexShader string

//go:embed shaders/display.frag
var displayFragmentShader string

// display draws the accumulation buffer of a Progressive as a full screen texture.
// It must only be used on the goroutine owning the GL context.
type display struct {
	vao     uint32
	vbo     uint32
	program uint32
	texture uint32

	scaleLoc int32
	imageLoc int32

	buf           []float32
	width, height int
}

func newDisplay(debug bool) (*display, error) {
	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Println("OpenGL version", version)

	if debug {
		gl.DebugMessageCallback(glDebugMessage, nil)
		gl.Enable(gl.DEBUG_OUTPUT)
	}

	d := &display{}

	// one triangle covering the viewport
	verticies := []float32{
		-3, -2,
		0, 3,
		3, -2,
	}

	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	gl.GenBuffers(1, &d.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verticies)*4, gl.Ptr(verticies), gl.STATIC_DRAW)

	var err error
	d.program, err = linkProgram(displayVertexShader, displayFragmentShader)
	if err != nil {
		return nil, err
	}
	gl.UseProgram(d.program)

	d.scaleLoc = gl.GetUniformLocation(d.program, gl.Str("scale\x00"))
	d.imageLoc = gl.GetUniformLocation(d.program, gl.Str("image\x00"))

	vertexAttrib := uint32(gl.GetAttribLocation(d.program, gl.Str("vert\x00")))
	gl.EnableVertexAttribArray(vertexAttrib)
	gl.VertexAttribPointerWithOffset(vertexAttrib, 2, gl.FLOAT, false, 2*4, 0)

	gl.GenTextures(1, &d.texture)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	return d, nil
}

// draw uploads the latest snapshot and draws it scaled to the viewport.
// The shader divides by the sample count, so the sums are uploaded as they are.
func (d *display) draw(p *render.Progressive, viewportWidth, viewportHeight int) {
	var width, height, samples int
	d.buf, width, height, samples = p.Snapshot(d.buf)

	gl.Viewport(0, 0, int32(viewportWidth), int32(viewportHeight))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if samples == 0 || len(d.buf) < 3*width*height {
		return
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, d.texture)
	if width != d.width || height != d.height {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, int32(width), int32(height), 0, gl.RGB, gl.FLOAT, gl.Ptr(d.buf))
		d.width, d.height = width, height
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(width), int32(height), gl.RGB, gl.FLOAT, gl.Ptr(d.buf))
	}

	gl.UseProgram(d.program)
	gl.Uniform1i(d.imageLoc, 0)
	gl.Uniform1f(d.scaleLoc, 1/float32(samples))
	gl.BindVertexArray(d.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

func (d *display) delete() {
	gl.DeleteTextures(1, &d.texture)
	gl.DeleteBuffers(1, &d.vbo)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.DeleteProgram(d.program)
}

func linkProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindFragDataLocation(program, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(program, l, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return
	}

	typeStr := "other"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	}

	log.Printf("gl(%v): %v; %v\n", severityStr, typeStr, message)
}

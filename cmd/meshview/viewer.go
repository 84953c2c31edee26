package main

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshkit/internal/config"
	"github.com/Faultbox/meshkit/internal/gpu"
	"github.com/Faultbox/meshkit/internal/logger"
	"github.com/Faultbox/meshkit/internal/mesh"
	"github.com/Faultbox/meshkit/internal/picking"
	"github.com/Faultbox/meshkit/internal/shader"
	"github.com/Faultbox/meshkit/internal/window"
	"github.com/Faultbox/meshkit/pkg/math"
)

// Viewer materializes a demo mesh asset through the GL device and
// renders it with an orbit camera. Clicking casts a ray through the
// submesh raycast geometry.
type Viewer struct {
	cfg *config.Config
	win *window.Window
	dev *gpu.GLDevice

	asset     *mesh.Asset
	rendering *mesh.RenderingMesh

	program   uint32
	locMVP    int32
	locModel  int32
	locLight  int32
	locColor  int32
	vaos      []uint32
	submeshes []mesh.RenderingSubmesh

	width, height int
	yaw, pitch    float32
	distance      float32

	running bool
}

// NewViewer creates the window, GL state, and the materialized mesh.
func NewViewer(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		cfg:      cfg,
		width:    cfg.Graphics.Width,
		height:   cfg.Graphics.Height,
		yaw:      0.6,
		pitch:    0.4,
		distance: 7,
	}

	win, err := window.New(window.Config{
		Title:      "meshview - " + cfg.Viewer.Scene,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}
	v.win = win

	if err := gl.Init(); err != nil {
		win.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Viewer.Background
	gl.ClearColor(bg[0], bg[1], bg[2], 1.0)

	v.program, err = shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("viewer shader: %w", err)
	}
	v.locMVP = shader.GetUniform(v.program, "uMVP")
	v.locModel = shader.GetUniform(v.program, "uModel")
	v.locLight = shader.GetUniform(v.program, "uLightDir")
	v.locColor = shader.GetUniform(v.program, "uColor")

	if err := v.loadScene(); err != nil {
		win.Close()
		return nil, err
	}

	return v, nil
}

// loadScene packs the configured demo scene, hands it to a mesh asset,
// and materializes GPU buffers plus one VAO per submesh.
func (v *Viewer) loadScene() error {
	s, buf, err := buildScene(v.cfg.Viewer.Scene, v.cfg.Viewer.DoubleSided)
	if err != nil {
		return err
	}

	v.dev = gpu.NewGLDevice()
	v.asset = mesh.NewAsset(s, buf)

	rm, err := v.asset.RenderingMesh(v.dev)
	if err != nil {
		return fmt.Errorf("materializing %s: %w", v.cfg.Viewer.Scene, err)
	}
	v.rendering = rm
	v.submeshes = rm.Submeshes()

	for _, sub := range v.submeshes {
		vao, err := buildVAO(sub)
		if err != nil {
			return err
		}
		v.vaos = append(v.vaos, vao)
	}

	logger.Info("scene materialized",
		zap.String("scene", v.cfg.Viewer.Scene),
		zap.Int("submeshes", len(v.submeshes)),
		zap.Int("vertexBuffers", rm.VertexBufferCount()),
		zap.Int("indexBuffers", rm.IndexBufferCount()))
	return nil
}

// buildVAO wires a submesh's GPU buffers into a vertex array object.
func buildVAO(sub mesh.RenderingSubmesh) (uint32, error) {
	vb, ok := sub.VertexBuffers[0].(*gpu.GLBuffer)
	if !ok {
		return 0, fmt.Errorf("submesh vertex buffer is not a GL buffer")
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vb.ID())
	stride := int32(vb.Stride())
	for i, attr := range sub.Attributes {
		xtype := uint32(gl.FLOAT)
		normalized := false
		if attr.Format == mesh.FormatUint8x4 {
			xtype = gl.UNSIGNED_BYTE
			normalized = true
		}
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), attr.Format.Components(), xtype, normalized, stride, uintptr(attr.Offset))
	}

	if sub.IndexBuffer != nil {
		ib, ok := sub.IndexBuffer.(*gpu.GLBuffer)
		if !ok {
			return 0, fmt.Errorf("submesh index buffer is not a GL buffer")
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.ID())
	}

	gl.BindVertexArray(0)
	return vao, nil
}

// Run drives the event/render loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	for v.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				v.running = false
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					v.running = false
				}
			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					v.width, v.height = v.win.GetSize()
					gl.Viewport(0, 0, int32(v.width), int32(v.height))
				}
			case *sdl.MouseMotionEvent:
				if e.State&sdl.ButtonRMask() != 0 {
					v.yaw += float32(e.XRel) * 0.01
					v.pitch += float32(e.YRel) * 0.01
					v.pitch = clamp(v.pitch, -1.5, 1.5)
				}
			case *sdl.MouseWheelEvent:
				v.distance -= float32(e.Y) * 0.5
				v.distance = clamp(v.distance, 2, 40)
			case *sdl.MouseButtonEvent:
				if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
					v.pick(float32(e.X), float32(e.Y))
				}
			}
		}

		v.render()
		v.win.SwapBuffers()
	}

	return nil
}

// pick casts a ray through the clicked pixel and logs the hit.
func (v *Viewer) pick(px, py float32) {
	viewProj := v.viewProj()
	ray := picking.ScreenToRay(px, py, float32(v.width), float32(v.height), viewProj.Inverse())

	s := v.asset.Struct()
	if s.MinPosition != nil && s.MaxPosition != nil {
		if _, hit := ray.IntersectAABB(*s.MinPosition, *s.MaxPosition); !hit {
			logger.Debug("pick missed bounding box")
			return
		}
	}

	hit, ok := v.rendering.Raycast(ray)
	if !ok {
		logger.Debug("pick missed geometry")
		return
	}
	logger.Info("picked triangle",
		zap.Int("submesh", hit.Submesh),
		zap.Int("triangle", hit.Triangle),
		zap.Float32("distance", hit.Distance),
		zap.Float32("x", hit.Point.X),
		zap.Float32("y", hit.Point.Y),
		zap.Float32("z", hit.Point.Z))
}

func (v *Viewer) viewProj() math.Mat4 {
	eye := math.Vec3{
		X: v.distance * float32(gomath.Cos(float64(v.pitch))*gomath.Sin(float64(v.yaw))),
		Y: v.distance * float32(gomath.Sin(float64(v.pitch))),
		Z: v.distance * float32(gomath.Cos(float64(v.pitch))*gomath.Cos(float64(v.yaw))),
	}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(gomath.Pi/4, float32(v.width)/float32(v.height), 0.1, 200)
	return proj.Mul(view)
}

func (v *Viewer) render() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(v.program)

	model := math.Identity()
	mvp := v.viewProj().Mul(model)
	gl.UniformMatrix4fv(v.locMVP, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(v.locModel, 1, false, model.Ptr())

	light := math.Vec3{X: -0.4, Y: -1, Z: -0.3}.Normalize()
	gl.Uniform3f(v.locLight, light.X, light.Y, light.Z)
	gl.Uniform3f(v.locColor, 0.8, 0.6, 0.3)

	for i, sub := range v.submeshes {
		gl.BindVertexArray(v.vaos[i])
		if sub.IndexBuffer != nil {
			gl.DrawElementsWithOffset(glMode(sub.Mode), int32(sub.IndexCount), glIndexType(sub.IndexUnit), 0)
		} else {
			gl.DrawArrays(glMode(sub.Mode), 0, int32(sub.VertexCount))
		}
	}
	gl.BindVertexArray(0)
}

// Close tears down GL objects, the mesh asset, and the window.
func (v *Viewer) Close() {
	for _, vao := range v.vaos {
		gl.DeleteVertexArrays(1, &vao)
	}
	if v.program != 0 {
		gl.DeleteProgram(v.program)
	}
	if v.asset != nil {
		v.asset.Destroy()
	}
	if v.win != nil {
		v.win.Close()
	}
}

func glMode(m mesh.PrimitiveMode) uint32 {
	switch m {
	case mesh.ModePoints:
		return gl.POINTS
	case mesh.ModeLines:
		return gl.LINES
	case mesh.ModeLineStrip:
		return gl.LINE_STRIP
	case mesh.ModeTriangleStrip:
		return gl.TRIANGLE_STRIP
	case mesh.ModeTriangleFan:
		return gl.TRIANGLE_FAN
	default:
		return gl.TRIANGLES
	}
}

func glIndexType(u mesh.IndexUnit) uint32 {
	switch u {
	case mesh.IndexU16:
		return gl.UNSIGNED_SHORT
	case mesh.IndexU32:
		return gl.UNSIGNED_INT
	default:
		return gl.UNSIGNED_BYTE
	}
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

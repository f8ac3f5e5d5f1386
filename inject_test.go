package motion

import "testing"

func TestInjectScrollSweep(t *testing.T) {
	vp := NewViewport(100, 100)
	vp.SetBounds(Rect{Width: 100, Height: 1000})
	o := NewOrchestrator(nil, vp)

	o.InjectScrollSweep(0, 300, 4)
	if o.PendingInjections() != 4 {
		t.Fatalf("expected 4 queued events, got %d", o.PendingInjections())
	}

	want := []float64{0, 100, 200, 300}
	for i, w := range want {
		if !o.processInjectedInput() {
			t.Fatalf("frame %d: expected an event", i)
		}
		if vp.ScrollY != w {
			t.Errorf("frame %d: ScrollY = %v, want %v", i, vp.ScrollY, w)
		}
	}
	if o.processInjectedInput() {
		t.Error("queue should be empty")
	}
}

func TestInjectScrollClampsToBounds(t *testing.T) {
	vp := NewViewport(100, 100)
	vp.SetBounds(Rect{Width: 100, Height: 500})
	o := NewOrchestrator(nil, vp)

	o.InjectScroll(0, 9000)
	o.processInjectedInput()
	if vp.ScrollY != 400 {
		t.Errorf("ScrollY = %v, want 400", vp.ScrollY)
	}
}

func TestInjectPointerAndLeave(t *testing.T) {
	o := NewOrchestrator(nil, NewViewport(100, 100))

	o.InjectPointer(30, 40)
	o.InjectPointerLeave()

	o.processInjectedInput()
	if !o.surf.pointer.present || o.surf.pointer.x != 30 || o.surf.pointer.y != 40 {
		t.Errorf("pointer = %+v, want present at (30, 40)", o.surf.pointer)
	}
	o.processInjectedInput()
	if o.surf.pointer.present {
		t.Error("pointer should have left")
	}
}

func TestInjectPointerPress(t *testing.T) {
	o := NewOrchestrator(nil, NewViewport(100, 100))

	o.InjectPointer(30, 40)
	o.InjectPointerPress(true)
	o.InjectPointer(35, 45)
	o.InjectPointerPress(false)

	o.processInjectedInput()
	o.processInjectedInput()
	if !o.surf.pointer.pressed {
		t.Error("pointer should be pressed")
	}
	o.processInjectedInput()
	if !o.surf.pointer.pressed || o.surf.pointer.x != 35 {
		t.Errorf("pointer = %+v, want still pressed at (35, 45)", o.surf.pointer)
	}
	o.processInjectedInput()
	if o.surf.pointer.pressed {
		t.Error("pointer should be released")
	}
}

func TestInjectResize(t *testing.T) {
	vp := NewViewport(100, 100)
	o := NewOrchestrator(nil, vp)

	o.InjectResize(320, 240)
	o.Update(1.0 / 60)
	if vp.Width != 320 || vp.Height != 240 {
		t.Errorf("viewport = %vx%v, want 320x240", vp.Width, vp.Height)
	}
}

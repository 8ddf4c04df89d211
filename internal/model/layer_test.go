package model

import "testing"

func TestLayerPatchApply(t *testing.T) {
	layer := ImageLayer{
		ID:      "layer-1",
		Name:    "cat.png",
		Opacity: 50,
		X:       100,
		Y:       100,
		Width:   100,
		Height:  80,
		Scale:   1,
		ZIndex:  2,
	}

	LayerPatch{Opacity: Ptr(75.0), X: Ptr(0.0), Name: Ptr("")}.Apply(&layer)

	if layer.Opacity != 75 {
		t.Errorf("Opacity = %v, want 75", layer.Opacity)
	}
	if layer.X != 0 {
		t.Errorf("X = %v, want 0", layer.X)
	}
	if layer.Name != "" {
		t.Errorf("Name = %q, want empty", layer.Name)
	}
	// untouched
	if layer.Y != 100 || layer.Width != 100 || layer.Height != 80 || layer.Scale != 1 {
		t.Errorf("unrelated fields changed: %+v", layer)
	}
	if layer.ID != "layer-1" || layer.ZIndex != 2 {
		t.Errorf("identity changed: %+v", layer)
	}
}

func TestLayerPatchIsEmpty(t *testing.T) {
	if !(LayerPatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (LayerPatch{Rotation: Ptr(0.0)}).IsEmpty() {
		t.Error("patch setting rotation to 0 should not be empty")
	}
}

func TestReplayOptionsDefaults(t *testing.T) {
	var opts ReplayOptions
	if opts.EffectiveSpeed() != 1 {
		t.Errorf("EffectiveSpeed() = %v, want 1", opts.EffectiveSpeed())
	}
	if opts.Looping() {
		t.Error("Looping() should be false when unset")
	}
	if opts.EasingName() != "" {
		t.Errorf("EasingName() = %q, want empty", opts.EasingName())
	}

	opts = ReplayOptions{Speed: Ptr(2.5), Loop: Ptr(true), Easing: Ptr("ease-in")}
	if opts.EffectiveSpeed() != 2.5 || !opts.Looping() || opts.EasingName() != "ease-in" {
		t.Errorf("unexpected values: %v %v %q", opts.EffectiveSpeed(), opts.Looping(), opts.EasingName())
	}

	opts.Speed = Ptr(-1.0)
	if opts.EffectiveSpeed() != 1 {
		t.Errorf("negative speed should fall back to 1, got %v", opts.EffectiveSpeed())
	}
}

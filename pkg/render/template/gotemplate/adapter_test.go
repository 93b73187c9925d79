package gotemplate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestNew_RequiresSource(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when neither base dir nor fs.FS is provided")
	}
}

func TestRenderTemplate_AppendsExtensionAndCaches(t *testing.T) {
	files := fstest.MapFS{
		"pages/greeting.tmpl": {Data: []byte("hello {{ name }}")},
	}

	engine, err := New(WithFS(files), WithExtension("tmpl"))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderTemplate("pages/greeting", map[string]any{"name": "wizard"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "hello wizard" {
		t.Fatalf("unexpected output: %q", out)
	}

	// second render goes through the template cache
	again, err := engine.RenderTemplate("pages/greeting", map[string]any{"name": "again"})
	if err != nil {
		t.Fatalf("render cached: %v", err)
	}
	if again != "hello again" {
		t.Fatalf("unexpected cached output: %q", again)
	}
}

func TestRenderString_WithStructData(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	data := struct {
		Title string `json:"title"`
	}{Title: "Step 1"}

	out, err := engine.RenderString("<h1>{{ title }}</h1>", data)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "<h1>Step 1</h1>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRender_DetectsInlineContent(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.Render("{{ value|trim }}", map[string]any{"value": "  padded  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "padded" {
		t.Fatalf("trim filter not applied: %q", out)
	}
}

func TestRenderString_KeepsScalarTypes(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	// Integers must render without a float mantissa: hidden inputs such as
	// the step index are parsed back on the next submission.
	out, err := engine.RenderString(`step={{ index }} of={{ count }} ratio={{ ratio }} on={{ flag }}`, map[string]any{
		"index": 1,
		"count": 2,
		"ratio": 0.5,
		"flag":  true,
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "step=1 of=2 ratio=0.500000 on=True" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRenderString_KeepsNestedIntegers(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString(`{{ page.step_index }}`, map[string]any{
		"page": map[string]any{"step_index": 1},
	})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if out != "1" {
		t.Fatalf("nested integer widened: %q", out)
	}
}

func TestGlobalContext(t *testing.T) {
	engine, err := New(WithFS(fstest.MapFS{}), WithGlobalData(map[string]any{"site": "example"}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	out, err := engine.RenderString("{{ site }}/{{ page }}", map[string]any{"page": "contact"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if !strings.HasPrefix(out, "example/") {
		t.Fatalf("global data missing: %q", out)
	}
}

package dnd_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/dnd"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

const canvasFixture = "testdata/canvas.json"

func TestResolvePalette(t *testing.T) {
	doc := testsupport.LoadDocument(t, canvasFixture)
	rect := dnd.Rect{Width: 10, Height: 10}

	cases := []struct {
		name   string
		region dnd.Region
		want   dnd.Target
	}{
		{name: "sibling on first page", region: dnd.ElementRegion("q2", rect), want: dnd.Target{Page: 0, Before: "q2"}},
		{name: "sibling on second page", region: dnd.ElementRegion("notes", rect), want: dnd.Target{Page: 1, Before: "notes"}},
		{name: "page container appends", region: dnd.PageRegion(2, rect), want: dnd.Target{Page: 2}},
		{name: "annotation wins over id", region: dnd.Region{ID: "page-drop-0", Kind: dnd.RegionPage}.WithPage(1), want: dnd.Target{Page: 1}},
		{name: "id encoded page", region: dnd.Region{ID: "canvas:page_2", Kind: dnd.RegionPage}, want: dnd.Target{Page: 2}},
		{name: "out of range annotation ignored", region: dnd.Region{ID: "page-drop-1", Kind: dnd.RegionPage}.WithPage(9), want: dnd.Target{Page: 1}},
		{name: "unknown region defaults to first page", region: dnd.Region{ID: "elsewhere", Kind: dnd.RegionPage}, want: dnd.Target{Page: 0}},
		{name: "nested element appends to first page", region: dnd.ElementRegion("inner", rect), want: dnd.Target{Page: 0}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := dnd.ResolvePalette(doc, tc.region)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("target mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolvePalette_FlatDocument(t *testing.T) {
	doc := testsupport.MustDecode(t, `{"elements":[{"type":"text","name":"a"},{"type":"text","name":"b"}]}`)
	got := dnd.ResolvePalette(doc, dnd.ElementRegion("b", dnd.Rect{}))
	if diff := cmp.Diff(dnd.Target{Page: 0, Before: "b"}, got); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveExisting(t *testing.T) {
	doc := testsupport.LoadDocument(t, canvasFixture)
	rect := dnd.Rect{Width: 10, Height: 10}

	if _, ok := dnd.ResolveExisting(doc, "q1", dnd.ElementRegion("q1", rect)); ok {
		t.Fatalf("hovering the dragged element should resolve to nothing")
	}
	if _, ok := dnd.ResolveExisting(doc, "missing", dnd.ElementRegion("q1", rect)); ok {
		t.Fatalf("unknown element should resolve to nothing")
	}
	if _, ok := dnd.ResolveExisting(doc, "page1", dnd.PageRegion(1, rect)); ok {
		t.Fatalf("pages are not draggable elements")
	}

	got, ok := dnd.ResolveExisting(doc, "q1", dnd.ElementRegion("q3", rect))
	if !ok {
		t.Fatalf("expected a target")
	}
	if diff := cmp.Diff(dnd.Target{Page: 0, Before: "q3"}, got); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}

	got, ok = dnd.ResolveExisting(doc, "inner", dnd.PageRegion(2, rect))
	if !ok {
		t.Fatalf("expected a target")
	}
	if diff := cmp.Diff(dnd.Target{Page: 2}, got); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
	if !got.Append() {
		t.Fatalf("page container target should append")
	}
}

func TestPageRegion(t *testing.T) {
	region := dnd.PageRegion(3, dnd.Rect{})
	if region.ID != "page-drop-3" {
		t.Fatalf("unexpected id %q", region.ID)
	}
	if region.Page == nil || *region.Page != 3 {
		t.Fatalf("expected page annotation 3, got %v", region.Page)
	}
	if region.Kind.String() != "page" || dnd.RegionElement.String() != "element" {
		t.Fatalf("unexpected kind names")
	}
}

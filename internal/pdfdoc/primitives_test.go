package pdfdoc

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

type fakeResolver struct {
	files map[string][]byte
	fail  bool
}

func (f fakeResolver) Exists(ref string) bool {
	_, ok := f.files[ref]
	return ok
}

func (f fakeResolver) ReadBytes(ref string) ([]byte, error) {
	if f.fail {
		return nil, errors.New("read failed")
	}
	b, ok := f.files[ref]
	if !ok {
		return nil, errors.New("missing")
	}
	return b, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testSheet() *StyleSheet {
	return NewStyleSheet(map[string]Style{
		StyleBody:    DefaultStyle(),
		StyleSection: DefaultStyle().WithBold(true).WithSize(14),
	})
}

func TestLabeledRow_BlankValueIsOmitted(t *testing.T) {
	sheet := testSheet()
	if b := LabeledRow("Race", "   ", [2]float64{40, 110}, sheet); b != nil {
		t.Fatalf("expected nil block, got %#v", b)
	}
	b := LabeledRow("Race", "Labrador", [2]float64{40, 110}, sheet)
	row, ok := b.(*InfoRow)
	if !ok || row.Value != "Labrador" {
		t.Fatalf("unexpected block %#v", b)
	}
}

func TestCompact_DropsNils(t *testing.T) {
	var typedNil *Paragraph
	blocks := Compact(P("a", DefaultStyle()), nil, typedNil, Space(2), LabeledRow("x", "", [2]float64{}, nil))
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Kind() != KindParagraph || blocks[1].Kind() != KindSpacer {
		t.Fatalf("order not preserved: %v %v", blocks[0].Kind(), blocks[1].Kind())
	}
}

func TestSection_EmitsHeadingEvenWhenEmpty(t *testing.T) {
	out := Section("SANTÉ", nil, true, testSheet())
	if len(out) != 2 || out[0].Kind() != KindParagraph || out[1].Kind() != KindRule {
		t.Fatalf("unexpected section %v", out)
	}
	out = Section("SANTÉ", []Block{nil, P("x", DefaultStyle())}, false, testSheet())
	if len(out) != 2 {
		t.Fatalf("expected heading + body, got %d", len(out))
	}
}

func TestRecordTable(t *testing.T) {
	ts := TableSpec{
		Headers: []string{"Vaccin", "Date"},
		Widths:  []float64{50, 30},
		Sheet:   testSheet(),
	}
	if b := RecordTable(ts); b != nil {
		t.Fatalf("empty table should be suppressed by default")
	}

	ts.KeepWhenEmpty = true
	tbl, ok := RecordTable(ts).(*Table)
	if !ok || len(tbl.Rows) != 1 || len(tbl.DataRows()) != 0 {
		t.Fatalf("expected header-only table, got %#v", tbl)
	}

	ts.Rows = [][]string{{"Rage", "05/03/2024"}, {"CHPPi"}}
	tbl = RecordTable(ts).(*Table)
	if len(tbl.DataRows()) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(tbl.DataRows()))
	}
	if got := tbl.Rows[2].Cells[1].Text.String(); got != "" {
		t.Fatalf("short record should pad with blanks, got %q", got)
	}
}

func TestImageBlock(t *testing.T) {
	res := fakeResolver{files: map[string][]byte{
		"photo.png": pngBytes(t),
		"bad.png":   []byte("not an image"),
	}}

	if ImageBlock(res, "", 10, 10, false) != nil {
		t.Fatalf("empty ref must be omitted")
	}
	if ImageBlock(res, "missing.png", 10, 10, false) != nil {
		t.Fatalf("missing ref must be omitted")
	}
	if ImageBlock(res, "bad.png", 10, 10, false) != nil {
		t.Fatalf("undecodable ref must be omitted")
	}
	if ImageBlock(fakeResolver{files: res.files, fail: true}, "photo.png", 10, 10, false) != nil {
		t.Fatalf("read failure must be omitted")
	}

	img, ok := ImageBlock(res, "photo.png", 30, 0, true).(*Image)
	if !ok || img.Format != "PNG" || !img.Framed || len(img.Data) == 0 {
		t.Fatalf("unexpected image block %#v", img)
	}
}

func TestStyleSheet_IsImmutable(t *testing.T) {
	fill := Hex("#F8F9FA")
	src := map[string]Style{StyleValue: {Size: 10, Fill: &fill}}
	sheet := NewStyleSheet(src)

	src[StyleValue] = Style{Size: 99}
	fill.R = 0

	got, ok := sheet.Get(StyleValue)
	if !ok || got.Size != 10 || got.Fill.R != 0xF8 {
		t.Fatalf("sheet changed after source mutation: %+v", got)
	}
	got.Fill.R = 1
	again, _ := sheet.Get(StyleValue)
	if again.Fill.R != 0xF8 {
		t.Fatalf("sheet changed through returned style")
	}
	if sheet.Style("unknown").Family != "Helvetica" {
		t.Fatalf("unexpected fallback")
	}
}

func TestHex(t *testing.T) {
	if got := Hex("#2C3E50"); got != (Color{0x2C, 0x3E, 0x50}) {
		t.Fatalf("Hex = %+v", got)
	}
	if got := Hex("nope"); got != Black {
		t.Fatalf("invalid hex should be black, got %+v", got)
	}
}

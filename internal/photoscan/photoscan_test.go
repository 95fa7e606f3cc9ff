package photoscan

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

func asciiEntry(tag uint16, s string) ifdEntry {
	b := append([]byte(s), 0)
	return ifdEntry{tag: tag, typ: 2, count: uint32(len(b)), data: b}
}

func shortEntry(tag, v uint16) ifdEntry {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return ifdEntry{tag: tag, typ: 3, count: 1, data: b}
}

func longEntry(tag uint16, v uint32) ifdEntry {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return ifdEntry{tag: tag, typ: 4, count: 1, data: b}
}

func ratEntry(tag uint16, num, den uint32) ifdEntry {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b[:4], num)
	binary.LittleEndian.PutUint32(b[4:], den)
	return ifdEntry{tag: tag, typ: 5, count: 1, data: b}
}

func ifdSize(n int) uint32 { return uint32(2 + 12*n + 4) }

// fakeTIFF builds a little-endian TIFF holding the tags photoscan reads.
func fakeTIFF(model, taken, subsec string, expNum, expDen, fNum, fDen uint32, iso uint16) []byte {
	exifIFD := []ifdEntry{
		ratEntry(0x829a, expNum, expDen),
		ratEntry(0x829d, fNum, fDen),
		shortEntry(0x8827, iso),
		asciiEntry(0x9003, taken),
		asciiEntry(0x9291, subsec),
	}
	ifd0Off := uint32(8)
	exifOff := ifd0Off + ifdSize(2)
	ifd0 := []ifdEntry{
		asciiEntry(0x0110, model),
		longEntry(0x8769, exifOff),
	}
	dataBase := exifOff + ifdSize(len(exifIFD))

	le := binary.LittleEndian
	var out, data bytes.Buffer
	out.WriteString("II")
	binary.Write(&out, le, uint16(42))
	binary.Write(&out, le, ifd0Off)

	writeIFD := func(entries []ifdEntry) {
		binary.Write(&out, le, uint16(len(entries)))
		for _, e := range entries {
			binary.Write(&out, le, e.tag)
			binary.Write(&out, le, e.typ)
			binary.Write(&out, le, e.count)
			if len(e.data) <= 4 {
				val := make([]byte, 4)
				copy(val, e.data)
				out.Write(val)
				continue
			}
			binary.Write(&out, le, dataBase+uint32(data.Len()))
			data.Write(e.data)
			if data.Len()%2 == 1 {
				data.WriteByte(0)
			}
		}
		binary.Write(&out, le, uint32(0))
	}
	writeIFD(ifd0)
	writeIFD(exifIFD)
	out.Write(data.Bytes())
	return out.Bytes()
}

func writePhoto(t *testing.T, dir, name, taken, subsec string) {
	t.Helper()
	data := fakeTIFF("Nikon Z 7", taken, subsec, 1, 500, 8, 1, 64)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDecodePhoto(t *testing.T) {
	data := fakeTIFF("Nikon Z 7", "2024:04:08 18:38:40", "5", 1, 500, 56, 10, 800)
	p, err := decodePhoto(bytes.NewReader(data), "IMG_0001.tif")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Camera != "Nikon Z 7" {
		t.Fatalf("camera = %q", p.Camera)
	}
	if p.Exposure != "1/500" || p.FStop != 5.6 || p.ISO != 800 {
		t.Fatalf("settings = %s f/%v ISO %d", p.Exposure, p.FStop, p.ISO)
	}
	want := time.Date(2024, 4, 8, 18, 38, 40, 500_000_000, time.UTC)
	if !p.TakenAt.Equal(want) {
		t.Fatalf("taken = %v, want %v", p.TakenAt, want)
	}
}

func TestDecodeRejectsNonExif(t *testing.T) {
	_, err := decodePhoto(strings.NewReader("not an image at all"), "notes.jpg")
	if !errors.Is(err, ErrNoExif) {
		t.Fatalf("err = %v, want ErrNoExif", err)
	}
}

func TestSubsecond(t *testing.T) {
	cases := map[string]time.Duration{
		"":    0,
		"5":   500 * time.Millisecond,
		"05":  50 * time.Millisecond,
		"123": 123 * time.Millisecond,
		" 25": 250 * time.Millisecond,
		"ab":  0,
	}
	for in, want := range cases {
		if got := subsecond(in); got != want {
			t.Fatalf("subsecond(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestScanReportsOffsetsSortedByName(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "IMG_0002.tif", "2024:04:08 18:38:41", "")
	writePhoto(t, dir, "IMG_0001.tif", "2024:04:08 18:38:40", "50")
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("no exif here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := NewScanner(2, time.Time{}, zerolog.Nop()).Scan(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(report.Photos) != 2 || report.Stats.Skipped != 1 || report.Stats.Errors != 0 {
		t.Fatalf("photos=%d skipped=%d errors=%d", len(report.Photos), report.Stats.Skipped, report.Stats.Errors)
	}

	var buf bytes.Buffer
	if err := report.WriteTable(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}
	want := strings.Join([]string{
		ReportHeader,
		"IMG_0001.tif" + strings.Repeat(" ", 20) + ", +,00:00:00.000, Nikon Z 7, 1/500 ,  8.0,   64",
		"IMG_0002.tif" + strings.Repeat(" ", 20) + ", +,00:00:00.500, Nikon Z 7, 1/500 ,  8.0,   64",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("table:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestScanWithReference(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "DSC_0100.tif", "2024:04:08 18:38:40", "5")

	c2 := time.Date(2024, 4, 8, 18, 38, 46, 600_000_000, time.UTC)
	report, err := NewScanner(1, c2, zerolog.Nop()).Scan(context.Background(), []string{filepath.Join(dir, "*.tif")})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(report.Photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(report.Photos))
	}
	p := report.Photos[0]
	if p.RelativePath != "DSC_0100.tif" {
		t.Fatalf("relative path = %q", p.RelativePath)
	}
	if got := p.Offset; got > -6.0999 || got < -6.1001 {
		t.Fatalf("offset = %v, want -6.1", got)
	}

	var buf bytes.Buffer
	if err := report.WriteJSON(&buf); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if !strings.Contains(buf.String(), `"relative_path": "DSC_0100.tif"`) {
		t.Fatalf("json = %s", buf.String())
	}
}

func TestScanStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	writePhoto(t, dir, "IMG_0001.tif", "2024:04:08 18:38:40", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewScanner(1, time.Time{}, zerolog.Nop()).Scan(ctx, []string{dir}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

package x11

import (
	"bytes"
	"errors"
	"testing"
)

func TestChunkRows(t *testing.T) {
	tests := []struct {
		name       string
		height     int
		stride     int
		maxBytes   int
		wantRows   int
		wantChunks int
		wantErr    bool
	}{
		{name: "fits in one", height: 10, stride: 4, maxBytes: 1000, wantRows: 10, wantChunks: 1},
		{name: "exact split", height: 10, stride: 4, maxBytes: 20, wantRows: 5, wantChunks: 2},
		{name: "partial last chunk", height: 10, stride: 4, maxBytes: 12, wantRows: 3, wantChunks: 4},
		{name: "payload not row aligned", height: 7, stride: 100, maxBytes: 250, wantRows: 2, wantChunks: 4},
		{name: "row too wide", height: 3, stride: 100, maxBytes: 99, wantErr: true},
		{name: "empty", height: 0, stride: 4, maxBytes: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, chunks, err := ChunkRows(tt.height, tt.stride, tt.maxBytes)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ChunkRows() error: %v", err)
			}
			if rows != tt.wantRows || chunks != tt.wantChunks {
				t.Fatalf("ChunkRows() = (%d, %d), want (%d, %d)", rows, chunks, tt.wantRows, tt.wantChunks)
			}
		})
	}
}

func TestChunkedWrite_CoversEveryRowOnce(t *testing.T) {
	const stride = 8
	buf := make([]byte, stride*11)
	for i := range buf {
		buf[i] = byte(i)
	}

	var got []byte
	var sizes []int
	next := 0
	err := ChunkedWrite(buf, stride, 3*stride+5, func(row, rows int, chunk []byte) error {
		if row != next {
			t.Fatalf("chunk starts at row %d, want %d", row, next)
		}
		if len(chunk) != rows*stride {
			t.Fatalf("chunk has %d bytes for %d rows", len(chunk), rows)
		}
		next += rows
		sizes = append(sizes, rows)
		got = append(got, chunk...)
		return nil
	})
	if err != nil {
		t.Fatalf("ChunkedWrite() error: %v", err)
	}

	want := []int{3, 3, 3, 2}
	if len(sizes) != len(want) {
		t.Fatalf("chunk sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("chunk sizes = %v, want %v", sizes, want)
		}
	}
	if !bytes.Equal(got, buf) {
		t.Fatal("reassembled chunks differ from input")
	}
}

func TestChunkedWrite_Errors(t *testing.T) {
	if err := ChunkedWrite(make([]byte, 10), 4, 100, nil); err == nil {
		t.Fatal("expected error for ragged buffer")
	}
	if err := ChunkedWrite(make([]byte, 8), 0, 100, nil); err == nil {
		t.Fatal("expected error for zero stride")
	}

	boom := errors.New("boom")
	calls := 0
	err := ChunkedWrite(make([]byte, 16), 4, 4, func(int, int, []byte) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("ChunkedWrite() = %v after %d calls, want boom after 1", err, calls)
	}
}

package x11

import "fmt"

// putImageHeader is the fixed part of a PutImage request in bytes.
const putImageHeader = 24

// ChunkRows works out how many whole rows of stride bytes fit into a payload
// of maxBytes, and how many chunks are needed to carry height rows. The chunk
// count is rounded up so the final, partial chunk is never dropped.
func ChunkRows(height, stride, maxBytes int) (rows, chunks int, err error) {
	if height <= 0 || stride <= 0 {
		return 0, 0, nil
	}
	rows = maxBytes / stride
	if rows == 0 {
		return 0, 0, fmt.Errorf("x11: a row of %d bytes does not fit in a request payload of %d bytes", stride, maxBytes)
	}
	if rows > height {
		rows = height
	}
	chunks = (height + rows - 1) / rows
	return rows, chunks, nil
}

// ChunkedWrite splits buf into row aligned pieces of at most maxBytes and
// calls write for each, passing the index of the first row, the number of
// rows and the bytes for those rows.
func ChunkedWrite(buf []byte, stride, maxBytes int, write func(row, rows int, chunk []byte) error) error {
	if stride <= 0 {
		return fmt.Errorf("x11: invalid stride %d", stride)
	}
	if len(buf)%stride != 0 {
		return fmt.Errorf("x11: buffer of %d bytes is not a whole number of %d byte rows", len(buf), stride)
	}
	height := len(buf) / stride

	perChunk, chunks, err := ChunkRows(height, stride, maxBytes)
	if err != nil {
		return err
	}

	for i := 0; i < chunks; i++ {
		row := i * perChunk
		rows := min(perChunk, height-row)
		if err := write(row, rows, buf[row*stride:(row+rows)*stride]); err != nil {
			return err
		}
	}
	return nil
}

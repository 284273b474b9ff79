package encodium

import (
	"io"
)

// Send writes r as one frame: its JSON object followed by a single '\n'.
func Send(w io.Writer, r *Record) error {
	b, err := r.ToJSON()
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// Recv reads one newline-terminated frame from src and constructs a t
// instance from it. Blocking and cancellation are the byte source's
// responsibility. A clean end of stream before the first byte returns
// io.EOF; end of stream mid-frame is a truncated ValidationError.
func Recv(t *Type, src io.Reader) (*Record, error) {
	frame, err := readFrame(src)
	if err != nil {
		return nil, err
	}
	return t.FromJSON(frame)
}

// readFrame accumulates bytes one at a time until the newline terminator.
func readFrame(src io.Reader) ([]byte, error) {
	if br, ok := src.(io.ByteReader); ok {
		var buf []byte
		for {
			b, err := br.ReadByte()
			if err != nil {
				return nil, frameReadError(err, len(buf))
			}
			if b == '\n' {
				return buf, nil
			}
			buf = append(buf, b)
		}
	}
	var buf []byte
	one := make([]byte, 1)
	for {
		n, err := src.Read(one)
		if n == 1 {
			if one[0] == '\n' {
				return buf, nil
			}
			buf = append(buf, one[0])
			continue
		}
		if err != nil {
			return nil, frameReadError(err, len(buf))
		}
	}
}

func frameReadError(err error, got int) error {
	if err == io.EOF {
		if got == 0 {
			return io.EOF
		}
		return &ValidationError{Code: CodeTruncated, Message: "stream ended before frame terminator", Cause: io.ErrUnexpectedEOF}
	}
	return err
}

package htmlstrip

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestReader(t *testing.T) {
	cases := []struct {
		name string
		r    func() io.Reader
		opts []ReaderOption
	}{
		{"whole", func() io.Reader { return strings.NewReader(page) }, nil},
		{"one byte reads", func() io.Reader { return iotest.OneByteReader(strings.NewReader(page)) }, nil},
		{"half reads", func() io.Reader { return iotest.HalfReader(strings.NewReader(page)) }, nil},
		{"data with eof", func() io.Reader { return iotest.DataErrReader(strings.NewReader(page)) }, nil},
		{"small buffer", func() io.Reader { return strings.NewReader(page) }, []ReaderOption{WithBufferSize(5)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, iotest.TestReader(NewReader(tc.r(), tc.opts...), []byte(compactString(page))))

			b, err := io.ReadAll(NewReader(tc.r(), tc.opts...))
			require.NoError(t, err)
			require.Equal(t, compactString(page), string(b))
		})
	}
}

// TestReaderSplitWrites splits the document across pipe writes in the middle of markup.
func TestReaderSplitWrites(t *testing.T) {
	parts := []string{"<p>Hel", "lo   ", "world</p>\n<pr", "e>  a\n", "</PR", "E>  <!-", "-  x -", "->  <![CDA", "TA[ ]", "] ]]", ">  b"}
	raw := strings.Join(parts, "")

	r, w := io.Pipe()
	go func() {
		for _, part := range parts {
			if _, err := w.Write([]byte(part)); err != nil {
				panic(err)
			}
		}
		if err := w.Close(); err != nil {
			panic(err)
		}
	}()

	b := new(bytes.Buffer)
	_, err := io.Copy(b, NewReader(r))
	require.NoError(t, err)
	require.Equal(t, compactString(raw), b.String())
	require.Equal(t, "<p>Hello world</p><pre>  a\n</PRE> <!--  x --> <![CDATA[ ]] ]]> b", b.String())
}

func TestReaderWhitespaceOnly(t *testing.T) {
	r := NewReader(iotest.OneByteReader(strings.NewReader("\n\n\t\t\r\n")))

	p := make([]byte, 8)
	n, err := r.Read(p)
	require.Zero(t, n)
	require.ErrorIs(t, err, io.EOF)
}

func TestReaderError(t *testing.T) {
	errBoom := errors.New("boom")
	r := NewReader(io.MultiReader(strings.NewReader("a  b"), iotest.ErrReader(errBoom)))

	b, err := io.ReadAll(r)
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, "a b", string(b))
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) { return 0, nil }

func TestReaderNoProgress(t *testing.T) {
	_, err := NewReader(emptyReader{}).Read(make([]byte, 1))
	require.ErrorIs(t, err, io.ErrNoProgress)
}

func TestReaderAborted(t *testing.T) {
	r := NewReader(strings.NewReader("<p>  a</p><#  b"))
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "<p> a</p><#  b", string(b))
	require.True(t, r.Aborted())
}

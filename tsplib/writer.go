package tsplib

import (
	"bufio"
	"io"
	"os"
	"strconv"

	gt "nickandperla.net/genetic_tsp"
)

// WriteTour writes one point id per line, in tour order, without a header.
func WriteTour(w io.Writer, t gt.Tour) error {
	bw := bufio.NewWriter(w)
	for _, p := range t {
		bw.WriteString(strconv.Itoa(p.ID))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func WriteTourFile(path string, t gt.Tour) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTour(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

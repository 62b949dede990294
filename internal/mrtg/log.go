package mrtg

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/n0needt0/goodies/check-mrtgtraf/internal/domain"
	"github.com/pkg/errors"
)

// recordFields is the fixed arity of an MRTG data line:
// timestamp, average in, average out, maximum in, maximum out.
const recordFields = 5

// Record is the most recent traffic sample recorded in an MRTG log.
// Rates are bytes/sec.
type Record struct {
	Timestamp  int64
	AverageIn  uint64
	AverageOut uint64
	MaximumIn  uint64
	MaximumOut uint64
}

// ReadLog extracts the sample from the second line of the MRTG log at
// path. The first line is a header and is discarded; anything after the
// second line is ignored, MRTG keeps the newest sample on top.
func ReadLog(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return Record{}, domain.IOError{Err: errors.Wrap(err, "unable to open MRTG log file")}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// header
	if !scanner.Scan() {
		return Record{}, scanFailed(scanner)
	}

	if !scanner.Scan() {
		return Record{}, scanFailed(scanner)
	}

	return ParseRecord(scanner.Text())
}

// ParseRecord tokenizes one MRTG data line. All five fields must be
// present and numeric; trailing fields are ignored like the original
// plugin did.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) < recordFields {
		return Record{}, domain.ParseError{Err: errors.Errorf("expected %d fields, got %d", recordFields, len(fields))}
	}

	values := make([]uint64, recordFields)
	for i, field := range fields[:recordFields] {
		n, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return Record{}, domain.ParseError{Err: errors.Wrapf(err, "bad field %d %q", i+1, field)}
		}
		values[i] = n
	}

	return Record{
		Timestamp:  int64(values[0]),
		AverageIn:  values[1],
		AverageOut: values[2],
		MaximumIn:  values[3],
		MaximumOut: values[4],
	}, nil
}

func scanFailed(scanner *bufio.Scanner) error {
	if err := scanner.Err(); err != nil {
		return domain.ParseError{Err: errors.Wrap(err, "error reading MRTG log file")}
	}
	return domain.ParseError{Err: errors.New("MRTG log file has fewer than two lines")}
}

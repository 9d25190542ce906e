package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// scannerBufSize bounds the longest line the shard scanner will accept.
// N-gram shard lines are short; this is generous headroom.
const scannerBufSize = 1 << 20 // 1 MB

// ProcessShard reads path line by line, calling ParseLine on each line and
// add for every line that parses successfully. Lines dropped by ParseLine
// (ok == false) are silently skipped. A malformed count field is a hard
// failure and aborts the whole shard.
//
// Shards named with a ".gz" suffix are decompressed with pgzip, which
// parallelizes DEFLATE decoding internally while still presenting a single
// sequential byte stream — shard processing itself remains strictly
// sequential, preserving the single-threaded aggregation model.
func ProcessShard(path string, add func(Record)) (lines int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("corpus: open shard %q: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, zerr := pgzip.NewReader(f)
		if zerr != nil {
			return 0, fmt.Errorf("corpus: open gzip shard %q: %w", path, zerr)
		}
		defer zr.Close()
		r = zr
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, scannerBufSize), scannerBufSize)

	for sc.Scan() {
		rec, ok, perr := ParseLine(sc.Text())
		if perr != nil {
			return lines, fmt.Errorf("corpus: shard %q line %d: %w", path, lines+1, perr)
		}
		lines++
		if !ok {
			continue
		}
		add(rec)
	}
	if serr := sc.Err(); serr != nil {
		return lines, fmt.Errorf("corpus: scan shard %q: %w", path, serr)
	}
	return lines, nil
}

// registry/serial.go
package registry

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NextAssetSerial computes the next free global asset serial: max+1, or 1
// for an empty collection. The read is optimistic; a concurrent batch may
// take the same value, in which case the unique index on serial_no rejects
// the later insert (the caller retries the whole request).
func NextAssetSerial(ctx context.Context, assets AssetStore) (int64, error) {
	max, err := assets.MaxSerial(ctx)
	if err != nil {
		return 0, &StoreError{Op: "max serial query", Err: err}
	}
	return max + 1, nil
}

// reserveSerialBlock computes one contiguous run [start, start+n-1] from a
// single max query instead of n read-modify-write round trips.
func reserveSerialBlock(ctx context.Context, assets AssetStore, n int) (int64, error) {
	start, err := NextAssetSerial(ctx, assets)
	if err != nil {
		return 0, err
	}
	return start, nil
}

// InstituteSerialPrefix maps an institute code to its one-letter serial
// prefix. Known institutes have fixed letters; anything else falls back to
// its first letter, or "X" for an empty code.
func InstituteSerialPrefix(institute string) string {
	inst := strings.ToUpper(strings.TrimSpace(institute))
	switch inst {
	case "UVPCE":
		return "U"
	case "BSPP":
		return "B"
	}
	if inst == "" {
		return "X"
	}
	r, _ := utf8.DecodeRuneInString(inst)
	return string(r)
}

// NextInstituteSerial finds the next free per-institute QR serial such as
// "U01". It seeds from the greatest existing serial, then probes upward
// re-checking the store at each candidate: deletions leave gaps below the
// max, and a concurrent request may have taken max+1 already. Numbers are
// zero-padded to two digits and simply grow wider past 99 ("U100").
func NextInstituteSerial(ctx context.Context, qr QrStore, institute string) (string, error) {
	inst := strings.ToUpper(strings.TrimSpace(institute))
	prefix := InstituteSerialPrefix(inst)

	last, err := qr.MaxSerialFor(ctx, inst, prefix)
	if err != nil {
		return "", &StoreError{Op: "max qr serial query", Err: err}
	}
	lastNum := 0
	if last != "" {
		if n, perr := strconv.Atoi(last[len(prefix):]); perr == nil {
			lastNum = n
		}
	}

	for n := lastNum + 1; ; n++ {
		cand := fmt.Sprintf("%s%02d", prefix, n)
		taken, err := qr.SerialExists(ctx, inst, cand)
		if err != nil {
			return "", &StoreError{Op: "qr serial probe", Err: err}
		}
		if !taken {
			return cand, nil
		}
	}
}

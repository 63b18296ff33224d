// registry/qrid.go
package registry

import (
	"fmt"
	"time"
)

const qrTimestampLayout = "02012006150405" // ddmmyyyyHHMMSS

// QrTimestamp formats the stamp shared by a QR batch. It is re-taken when
// an insert hits a qr_id conflict.
func QrTimestamp(at time.Time) string {
	return at.Format(qrTimestampLayout)
}

// QrID builds <INSTITUTE>/<DEPT>/<stamp>/<4-digit-seq>. Institute and
// department are expected to be sanitized and upper-cased already.
func QrID(institute, department, stamp string, seq int) string {
	return fmt.Sprintf("%s/%s/%s/%04d", institute, department, stamp, seq)
}

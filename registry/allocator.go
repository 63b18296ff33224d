// registry/allocator.go
package registry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/swet3114/CampusAssets/models"
)

// Quantity bounds per request.
const (
	MaxAssetBatch = 1000
	MaxQrBatch    = 2000
)

// qrMaxAttempts bounds the per-item insert loop for QR allocation.
const qrMaxAttempts = 8

// Allocator owns identifier allocation for both registries. It takes no
// locks: candidate identifiers are computed optimistically and the store's
// unique indexes are the only correctness backstop under concurrency.
type Allocator struct {
	assets AssetStore
	qr     QrStore
	now    nowFunc
}

func NewAllocator(assets AssetStore, qr QrStore) *Allocator {
	return &Allocator{assets: assets, qr: qr, now: time.Now}
}

// AssetBatchRequest carries the shared fields for one bulk-asset request.
type AssetBatchRequest struct {
	AssetName           string `json:"asset_name"`
	Category            string `json:"category"`
	Location            string `json:"location"`
	AssignDate          string `json:"assign_date"`
	Status              string `json:"status"`
	Desc                string `json:"desc"`
	VerificationDate    string `json:"verification_date"`
	Verified            bool   `json:"verified"`
	VerifiedBy          string `json:"verified_by"`
	Institute           string `json:"institute"`
	Department          string `json:"department"`
	AssignedType        string `json:"assigned_type"`
	AssignedFacultyName string `json:"assigned_faculty_name"`
	Quantity            int    `json:"quantity"`
}

func (r *AssetBatchRequest) normalize() {
	r.AssetName = strings.TrimSpace(r.AssetName)
	r.Category = strings.TrimSpace(r.Category)
	r.Location = strings.TrimSpace(r.Location)
	r.AssignDate = strings.TrimSpace(r.AssignDate)
	r.Status = strings.TrimSpace(r.Status)
	r.Desc = strings.TrimSpace(r.Desc)
	r.VerificationDate = strings.TrimSpace(r.VerificationDate)
	r.VerifiedBy = strings.TrimSpace(r.VerifiedBy)
	r.Institute = strings.TrimSpace(r.Institute)
	r.Department = strings.TrimSpace(r.Department)
	r.AssignedType = strings.ToLower(strings.TrimSpace(r.AssignedType))
	r.AssignedFacultyName = strings.TrimSpace(r.AssignedFacultyName)
	if r.AssignedType == "" {
		r.AssignedType = models.AssignedGeneral
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
}

func (r *AssetBatchRequest) validate() error {
	var missing []string
	if r.AssetName == "" {
		missing = append(missing, "asset_name")
	}
	if r.Category == "" {
		missing = append(missing, "category")
	}
	if r.Location == "" {
		missing = append(missing, "location")
	}
	if r.Status == "" {
		missing = append(missing, "status")
	}
	if !models.ValidAssignedType(r.AssignedType) {
		return validationf("assigned_type must be 'individual' or 'general'")
	}
	if r.AssignedType == models.AssignedIndividual && r.AssignedFacultyName == "" {
		missing = append(missing, "assigned_faculty_name")
	}
	if len(missing) > 0 {
		return validationf("Missing or empty field(s): %s", strings.Join(missing, ", "))
	}
	if r.Quantity < 1 || r.Quantity > MaxAssetBatch {
		return validationf("quantity must be between 1 and %d", MaxAssetBatch)
	}
	if !models.ValidStatus(r.Status) {
		return validationf("status must be one of [active damage inactive repair scrape]")
	}
	return nil
}

// CreateAssetBatch allocates quantity assets as a unit: one serial block
// reservation, one registration prefix, one ordered bulk insert. On a
// duplicate-key failure the prefix is regenerated, the serial block is
// re-reserved (the conflict may have been a serial race with a concurrent
// batch, not a registration collision) and the insert is retried exactly
// once. All-or-nothing: any other failure aborts the whole batch.
func (a *Allocator) CreateAssetBatch(ctx context.Context, req AssetBatchRequest) ([]models.Asset, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return nil, err
	}

	facultyName := ""
	if req.AssignedType == models.AssignedIndividual {
		facultyName = req.AssignedFacultyName
	}

	build := func(start int64, prefix string, at time.Time) []models.Asset {
		docs := make([]models.Asset, 0, req.Quantity)
		for i := 1; i <= req.Quantity; i++ {
			docs = append(docs, models.Asset{
				SerialNo:            start + int64(i-1),
				RegistrationNumber:  RegWithSeq(prefix, i),
				AssetName:           req.AssetName,
				Category:            req.Category,
				Location:            req.Location,
				AssignDate:          req.AssignDate,
				Status:              req.Status,
				Desc:                req.Desc,
				VerificationDate:    req.VerificationDate,
				Verified:            req.Verified,
				VerifiedBy:          req.VerifiedBy,
				Institute:           req.Institute,
				Department:          req.Department,
				AssignedType:        req.AssignedType,
				AssignedFacultyName: facultyName,
				CreatedAt:           at.UTC(),
			})
		}
		return docs
	}

	const maxInsertAttempts = 2
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		start, err := reserveSerialBlock(ctx, a.assets, req.Quantity)
		if err != nil {
			return nil, err
		}
		at := a.now()
		docs := build(start, RegPrefix(req.AssetName, at), at)

		err = a.assets.InsertBatch(ctx, docs)
		if err == nil {
			return docs, nil
		}
		if !errors.Is(err, ErrDuplicateKey) {
			return nil, &StoreError{Op: "asset bulk insert", Err: err}
		}
	}
	return nil, &AllocationExhaustedError{Key: "registration_number/serial_no", Attempts: maxInsertAttempts}
}

// QrBatchRequest carries one bulk-QR request.
type QrBatchRequest struct {
	Institute  string `json:"institute"`
	Department string `json:"department"`
	Quantity   int    `json:"quantity"`
}

// CreateQrBatch allocates quantity QR records one insert at a time: each
// item's per-institute serial depends on what earlier items committed, so
// there is no single bulk insert. A qr_id conflict refreshes the shared
// timestamp and retries that item, up to 8 attempts; a serial conflict
// retries with a freshly probed serial; any other store error, or an item
// exhausting its attempts, aborts the whole batch.
func (a *Allocator) CreateQrBatch(ctx context.Context, req QrBatchRequest) ([]models.QrRecord, error) {
	institute := strings.TrimSpace(req.Institute)
	department := strings.TrimSpace(req.Department)
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if institute == "" || department == "" {
		return nil, validationf("institute and department are required")
	}
	if quantity < 1 || quantity > MaxQrBatch {
		return nil, validationf("quantity must be between 1 and %d", MaxQrBatch)
	}

	inst := strings.ToUpper(SanitizeToken(institute))
	dept := strings.ToUpper(SanitizeToken(department))
	stamp := QrTimestamp(a.now())

	results := make([]models.QrRecord, 0, quantity)
	for seq := 1; seq <= quantity; seq++ {
		var inserted *models.QrRecord
		for attempt := 0; attempt < qrMaxAttempts; attempt++ {
			serial, err := NextInstituteSerial(ctx, a.qr, inst)
			if err != nil {
				return nil, err
			}
			rec := models.QrRecord{
				QrID:       QrID(inst, dept, stamp, seq),
				SerialNo:   serial,
				Institute:  inst,
				Department: dept,
				Ts:         stamp,
				CreatedAt:  a.now().UTC(),
				Used:       false,
			}
			err = a.qr.Insert(ctx, &rec)
			if err == nil {
				inserted = &rec
				break
			}
			if !errors.Is(err, ErrDuplicateKey) {
				return nil, &StoreError{Op: "qr insert", Err: err}
			}
			// Re-stamp only when the collision was on qr_id; a serial
			// collision just needs a fresh probe on the next attempt.
			taken, qerr := a.qr.QrIDExists(ctx, rec.QrID)
			if qerr != nil {
				return nil, &StoreError{Op: "qr_id conflict check", Err: qerr}
			}
			if taken {
				stamp = QrTimestamp(a.now())
			}
		}
		if inserted == nil {
			return nil, &AllocationExhaustedError{Key: "qr_id", Attempts: qrMaxAttempts}
		}
		results = append(results, *inserted)
	}
	return results, nil
}

// NextSerial exposes the next free global asset serial.
func (a *Allocator) NextSerial(ctx context.Context) (int64, error) {
	return NextAssetSerial(ctx, a.assets)
}

package registry

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/swet3114/CampusAssets/models"
)

// memAssetStore is an in-memory AssetStore that enforces the same unique
// indexes as the real collection.
type memAssetStore struct {
	mu          sync.Mutex
	assets      []models.Asset
	failInserts int // inject duplicate-key failures for the next n batches
}

func newMemAssetStore() *memAssetStore {
	return &memAssetStore{}
}

func (m *memAssetStore) MaxSerial(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for _, a := range m.assets {
		if a.SerialNo > max {
			max = a.SerialNo
		}
	}
	return max, nil
}

func (m *memAssetStore) InsertBatch(ctx context.Context, batch []models.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInserts > 0 {
		m.failInserts--
		return ErrDuplicateKey
	}
	for _, a := range batch {
		for _, existing := range m.assets {
			if existing.SerialNo == a.SerialNo || existing.RegistrationNumber == a.RegistrationNumber {
				return ErrDuplicateKey
			}
		}
	}
	for i := range batch {
		if batch[i].ID.IsZero() {
			batch[i].ID = primitive.NewObjectID()
		}
		m.assets = append(m.assets, batch[i])
	}
	return nil
}

func (m *memAssetStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.ID == id {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memAssetStore) FindBySerial(ctx context.Context, serial int64) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.SerialNo == serial {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memAssetStore) FindByRegistration(ctx context.Context, reg string) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.RegistrationNumber == reg {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memAssetStore) List(ctx context.Context) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Asset, len(m.assets))
	copy(out, m.assets)
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNo < out[j].SerialNo })
	return out, nil
}

func (m *memAssetStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assets {
		if m.assets[i].ID == id {
			applyAssetFields(&m.assets[i], fields)
			found := m.assets[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memAssetStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.assets {
		if m.assets[i].ID == id {
			m.assets = append(m.assets[:i], m.assets[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func applyAssetFields(a *models.Asset, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "asset_name":
			a.AssetName, _ = v.(string)
		case "category":
			a.Category, _ = v.(string)
		case "location":
			a.Location, _ = v.(string)
		case "status":
			a.Status, _ = v.(string)
		case "verified":
			a.Verified, _ = v.(bool)
		case "assigned_faculty_name":
			a.AssignedFacultyName, _ = v.(string)
		}
	}
}

// memQrStore is an in-memory QrStore with the qr_id and
// (serial_no, institute) unique indexes.
type memQrStore struct {
	mu          sync.Mutex
	records     []models.QrRecord
	failInserts int
}

func newMemQrStore() *memQrStore {
	return &memQrStore{}
}

func (m *memQrStore) MaxSerialFor(ctx context.Context, institute, prefix string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	re := regexp.MustCompile("^" + prefix + `\d{2,}$`)
	max := ""
	for _, r := range m.records {
		if r.Institute == institute && re.MatchString(r.SerialNo) && r.SerialNo > max {
			max = r.SerialNo
		}
	}
	return max, nil
}

func (m *memQrStore) SerialExists(ctx context.Context, institute, serial string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.Institute == institute && r.SerialNo == serial {
			return true, nil
		}
	}
	return false, nil
}

func (m *memQrStore) QrIDExists(ctx context.Context, qrID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.QrID == qrID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memQrStore) Insert(ctx context.Context, rec *models.QrRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInserts > 0 {
		m.failInserts--
		return ErrDuplicateKey
	}
	for _, r := range m.records {
		if r.QrID == rec.QrID {
			return ErrDuplicateKey
		}
		if r.Institute == rec.Institute && r.SerialNo == rec.SerialNo {
			return ErrDuplicateKey
		}
	}
	if rec.ID.IsZero() {
		rec.ID = primitive.NewObjectID()
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *memQrStore) FindByQrID(ctx context.Context, qrID string) (*models.QrRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.QrID == qrID {
			found := r
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memQrStore) List(ctx context.Context, f QrFilter) (int64, []models.QrRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.QrRecord
	for _, r := range m.records {
		if f.Institute != "" && r.Institute != f.Institute {
			continue
		}
		if f.Department != "" && r.Department != f.Department {
			continue
		}
		if f.Used != nil && r.Used != *f.Used {
			continue
		}
		out = append(out, r)
	}
	return int64(len(out)), out, nil
}

func (m *memQrStore) Update(ctx context.Context, qrID string, fields bson.M) (*models.QrRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].QrID == qrID {
			applyQrFields(&m.records[i], fields)
			found := m.records[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memQrStore) DeleteByQrID(ctx context.Context, qrID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].QrID == qrID {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *memQrStore) DeleteByAssetID(ctx context.Context, assetID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []models.QrRecord
	var deleted int64
	for _, r := range m.records {
		if r.AssetID != nil && *r.AssetID == assetID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept
	return deleted, nil
}

func applyQrFields(r *models.QrRecord, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "asset_name":
			r.AssetName, _ = v.(string)
		case "category":
			r.Category, _ = v.(string)
		case "location":
			r.Location, _ = v.(string)
		case "assign_date":
			r.AssignDate, _ = v.(string)
		case "status":
			r.Status, _ = v.(string)
		case "desc":
			r.Desc, _ = v.(string)
		case "verification_date":
			r.VerificationDate, _ = v.(string)
		case "verified":
			r.Verified, _ = v.(bool)
		case "verified_by":
			r.VerifiedBy, _ = v.(string)
		case "institute":
			r.Institute, _ = v.(string)
		case "department":
			r.Department, _ = v.(string)
		case "assigned_type":
			r.AssignedType, _ = v.(string)
		case "assigned_faculty_name":
			r.AssignedFacultyName, _ = v.(string)
		case "used":
			r.Used, _ = v.(bool)
		case "linked_at":
			if t, ok := v.(time.Time); ok {
				r.LinkedAt = &t
			}
		case "asset_id":
			if id, ok := v.(primitive.ObjectID); ok {
				r.AssetID = &id
			}
		}
	}
}

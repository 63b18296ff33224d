// audit/sink.go
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/swet3114/CampusAssets/models"
)

// Sink consumes audit events. Recording is best-effort: implementations
// never return an error and must never block the primary operation.
type Sink interface {
	Record(ctx context.Context, ev models.AuditEvent)
}

// MongoSink appends events to a collection and mirrors them onto the
// websocket hub. Persistence failures are logged and swallowed.
type MongoSink struct {
	col *mongo.Collection
	hub *Hub
}

func NewMongoSink(col *mongo.Collection, hub *Hub) *MongoSink {
	return &MongoSink{col: col, hub: hub}
}

func (s *MongoSink) Record(ctx context.Context, ev models.AuditEvent) {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	// Detach from the request context so a canceled request still gets
	// its trail entry.
	insertCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := s.col.InsertOne(insertCtx, ev); err != nil {
		log.Printf("audit insert failed (ignored): %v", err)
	}

	if s.hub != nil {
		if data, err := json.Marshal(ev); err == nil {
			s.hub.Broadcast(data)
		}
	}
}

// NopSink discards everything. Used in tests.
type NopSink struct{}

func (NopSink) Record(ctx context.Context, ev models.AuditEvent) {}

// ContextFromRequest captures request metadata with the client
// identifiers already masked/hashed.
func ContextFromRequest(r *http.Request, requestID string) models.AuditContext {
	return models.AuditContext{
		IP:        MaskIP(clientIP(r)),
		UserAgent: HashUserAgent(r.UserAgent()),
		RequestID: requestID,
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// MaskIP zeroes the host-identifying tail: the last two octets of an IPv4
// address, everything past the /32 of an IPv6 address.
func MaskIP(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if v4 := parsed.To4(); v4 != nil {
		return net.IPv4(v4[0], v4[1], 0, 0).String() + "/16"
	}
	return parsed.Mask(net.CIDRMask(32, 128)).String() + "/32"
}

// HashUserAgent stores a short SHA-256 digest instead of the raw string.
func HashUserAgent(ua string) string {
	if ua == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(ua))
	return "sha256:" + hex.EncodeToString(sum[:8])
}

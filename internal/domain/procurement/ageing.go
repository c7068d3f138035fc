package procurement

// Buckets de antigüedad por días hasta el vencimiento del lote.
const (
	BucketExpired = "Expired"
	Bucket0To30   = "0-30"
	Bucket31To90  = "31-90"
	Bucket91Plus  = "91+"
)

// AgeingBucket clasifica los días hasta vencimiento en su bucket.
// <= 0 es vencido; los cortes superiores son inclusivos (30 → "0-30").
func AgeingBucket(daysUntilExpiry int) string {
	switch {
	case daysUntilExpiry <= 0:
		return BucketExpired
	case daysUntilExpiry <= 30:
		return Bucket0To30
	case daysUntilExpiry <= 90:
		return Bucket31To90
	default:
		return Bucket91Plus
	}
}

// AgeingBuckets devuelve los buckets en orden de presentación.
func AgeingBuckets() []string {
	return []string{BucketExpired, Bucket0To30, Bucket31To90, Bucket91Plus}
}

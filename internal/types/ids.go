// internal/types/ids.go
package types

import "github.com/google/uuid"

// DeliveryID identifies one webhook delivery. GitHub supplies it in the
// X-GitHub-Delivery header; one is generated when the header is absent.
type DeliveryID string

func NewDeliveryID() DeliveryID {
	return DeliveryID(uuid.New().String())
}

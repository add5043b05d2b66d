package pdfdoc

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DocumentNumber genera "<PREFIX>-YYYYMMDD-NNNN" con sufijo aleatorio
// 1000-9999. Es único solo en el mejor esfuerzo: no hay control de colisión.
func DocumentNumber(prefix string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%d", prefix, at.Format("20060102"), 1000+rand.IntN(9000))
}

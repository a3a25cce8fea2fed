package adapter

import "time"

// Clock supplies the current time to use cases whose results depend on it.
type Clock interface {
	Now() time.Time
}

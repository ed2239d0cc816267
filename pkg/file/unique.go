package file

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// numberedSuffix matches a stem ending in "-N" where N is 1-2 digits and the
// character before the dash is not a digit, so region tags like "es-419"
// never lose their tail.
var numberedSuffix = regexp.MustCompile(`^(.*[^0-9])-([0-9]{1,2})$`)

// SplitNumberedSuffix splits a file stem into its main part and numeric
// disambiguator. Returns n == 0 when the stem carries no suffix.
func SplitNumberedSuffix(stem string) (main string, n int) {
	m := numberedSuffix.FindStringSubmatch(stem)
	if m == nil {
		return stem, 0
	}
	fmt.Sscanf(m[2], "%d", &n)
	return m[1], n
}

// Allocator hands out collision-free paths. It tracks a reservation set
// covering paths claimed by in-flight work in addition to what is already on
// disk. Reserve must not be called concurrently for correctness of the
// probing sequence; the internal mutex makes interleaved calls safe, but
// callers that need deterministic names (e.g. pre-allocating download
// targets) should reserve everything serially before starting parallel
// writes.
type Allocator struct {
	mu       sync.Mutex
	reserved map[string]struct{}
}

func NewAllocator() *Allocator {
	return &Allocator{reserved: make(map[string]struct{})}
}

// Reserve returns a path that collides neither with an existing file nor
// with a previously reserved path. If desired is free it is reserved and
// returned unchanged. Otherwise the stem's numeric suffix (if any) seeds the
// probe sequence: "-N" continues at N+1, an unsuffixed stem starts at 1.
func (a *Allocator) Reserve(desired string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.free(desired) {
		a.reserved[desired] = struct{}{}
		return desired
	}

	dir := filepath.Dir(desired)
	ext := filepath.Ext(desired)
	stem := Stem(desired)

	main, n := SplitNumberedSuffix(stem)
	i := n + 1

	for {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", main, i, ext))
		if a.free(candidate) {
			a.reserved[candidate] = struct{}{}
			return candidate
		}
		i++
	}
}

// Release drops a reservation, e.g. after the file it covered was renamed
// away or deleted.
func (a *Allocator) Release(path string) {
	a.mu.Lock()
	delete(a.reserved, path)
	a.mu.Unlock()
}

// MarkUsed records an existing path in the reservation set without probing.
func (a *Allocator) MarkUsed(path string) {
	a.mu.Lock()
	a.reserved[path] = struct{}{}
	a.mu.Unlock()
}

func (a *Allocator) free(path string) bool {
	if _, ok := a.reserved[path]; ok {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

package lock

import (
	"context"
	"sort"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const pollInterval = 10 * time.Millisecond

func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	return WithKeys(ctx, []string{key}, wait, safeCode)
}

// WithKeys захватывает все ключи (в отсортированном порядке, чтобы не было взаимных блокировок)
// и выполняет safeCode. success=false если за wait ключи захватить не удалось
func WithKeys(ctx context.Context, keys []string, wait time.Duration, safeCode func() error) (success bool, err error) {
	keys = UniqueSorted(keys)
	isTimeout := time.After(wait)
	acquired := make([]string, 0, len(keys))
	defer func() {
		for _, key := range acquired {
			lockMap.Delete(key)
		}
	}()
	for _, key := range keys {
		for {
			if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
				acquired = append(acquired, key)
				break
			}
			select {
			case <-isTimeout:
				return false, nil
			case <-ctx.Done():
				return false, nil
			default:
				time.Sleep(pollInterval)
			}
		}
	}
	return true, safeCode()
}

func IsLocked(key string) bool {
	_, ok := lockMap.Load(key)
	return ok
}

// UniqueSorted - ключи без повторов в едином порядке захвата
func UniqueSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	result := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

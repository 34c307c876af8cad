package builder

// Generic helpers for the ID-keyed collections. Each returns the new slice
// and whether anything changed; the input slice is never modified.

func indexByID[T any](list []T, id string, idOf func(T) string) int {
	for i, item := range list {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func appendUnique[T any](list []T, item T, idOf func(T) string) ([]T, bool) {
	id := idOf(item)
	if id == "" || indexByID(list, id, idOf) >= 0 {
		return list, false
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item), true
}

func replaceByID[T any](list []T, item T, idOf func(T) string) ([]T, bool) {
	i := indexByID(list, idOf(item), idOf)
	if i < 0 {
		return list, false
	}
	out := append([]T{}, list...)
	out[i] = item
	return out, true
}

func removeByID[T any](list []T, id string, idOf func(T) string) ([]T, bool) {
	i := indexByID(list, id, idOf)
	if i < 0 {
		return list, false
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...), true
}

func moveByID[T any](list []T, id string, to int, idOf func(T) string) ([]T, bool) {
	return moveIndex(list, indexByID(list, id, idOf), to)
}

// moveIndex moves list[from] to position to (clamped)
func moveIndex[T any](list []T, from, to int) ([]T, bool) {
	if from < 0 || from >= len(list) {
		return list, false
	}
	to = clamp(to, 0, len(list)-1)
	if from == to {
		return list, false
	}
	item := list[from]
	out := make([]T, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out, true
}

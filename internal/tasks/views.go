package tasks

// UrgentActive is the alert view: urgent tasks that are still active, in
// the order of the loaded list.
func UrgentActive(list []Task) []Task {
	out := []Task{}
	for _, t := range list {
		if t.IsUrgentActive() {
			out = append(out, t)
		}
	}
	return out
}

func Active(list []Task) []Task {
	out := []Task{}
	for _, t := range list {
		if t.Status == StatusActive {
			out = append(out, t)
		}
	}
	return out
}

// IDSet indexes task ids for membership checks.
func IDSet(list []Task) map[string]struct{} {
	set := make(map[string]struct{}, len(list))
	for _, t := range list {
		set[t.ID] = struct{}{}
	}
	return set
}

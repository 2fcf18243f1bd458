package common

// ProcessQuestions randomizes every question in order. A single invalid
// question fails the whole set.
func ProcessQuestions(rs RandomSource, raws []RawQuestion) ([]WorkingQuestion, error) {
	seen := make(map[int]struct{}, len(raws))
	working := make([]WorkingQuestion, 0, len(raws))
	for _, raw := range raws {
		if _, ok := seen[raw.ID]; ok {
			return nil, NewDataIntegrityError(raw.ID, "question id is not unique within the set")
		}
		seen[raw.ID] = struct{}{}

		q, err := Randomize(rs, raw)
		if err != nil {
			return nil, err
		}
		working = append(working, q)
	}
	return working, nil
}

package agentkit

// Add accumulates other into u in place, summing token counts and their
// per-modality details. Nil detail pointers are treated as all-zero.
func (u *ModelUsage) Add(other *ModelUsage) {
	if other == nil {
		return
	}
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.InputTokensDetails = addTokensDetails(u.InputTokensDetails, other.InputTokensDetails)
	u.OutputTokensDetails = addTokensDetails(u.OutputTokensDetails, other.OutputTokensDetails)
}

func addTokensDetails(a, b *ModelTokensDetails) *ModelTokensDetails {
	if a == nil && b == nil {
		return nil
	}
	if a == nil {
		a = &ModelTokensDetails{}
	}
	if b == nil {
		return a
	}

	result := &ModelTokensDetails{}
	result.TextTokens = addIntPtr(a.TextTokens, b.TextTokens)
	result.CachedTextTokens = addIntPtr(a.CachedTextTokens, b.CachedTextTokens)
	result.AudioTokens = addIntPtr(a.AudioTokens, b.AudioTokens)
	result.CachedAudioTokens = addIntPtr(a.CachedAudioTokens, b.CachedAudioTokens)
	result.ImageTokens = addIntPtr(a.ImageTokens, b.ImageTokens)
	result.CachedImageTokens = addIntPtr(a.CachedImageTokens, b.CachedImageTokens)
	return result
}

func addIntPtr(a, b *int) *int {
	if a == nil && b == nil {
		return nil
	}
	sum := 0
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return &sum
}

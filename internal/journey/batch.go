package journey

// DefaultBatchSize is the maximum number of keywords sent in one backend request.
const DefaultBatchSize = 50

// Partition splits keywords into contiguous batches of at most size elements,
// preserving order. A non-positive size selects DefaultBatchSize. The returned
// batches share keywords' backing array.
func Partition(keywords []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	if len(keywords) == 0 {
		return nil
	}

	batches := make([][]string, 0, (len(keywords)+size-1)/size)
	for start := 0; start < len(keywords); start += size {
		end := start + size
		if end > len(keywords) {
			end = len(keywords)
		}
		batches = append(batches, keywords[start:end:end])
	}
	return batches
}

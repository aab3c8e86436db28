package domain

// FileReport is the per-file outcome of one ingestion batch.
type FileReport struct {
	// FileName is the file this report covers.
	FileName string

	// Chunks is the number of chunks produced from the file.
	Chunks int

	// Err is the failure that excluded the file from the index,
	// or nil on success.
	Err error
}

// Failed returns true if the file was excluded from the index.
func (r FileReport) Failed() bool {
	return r.Err != nil
}

// IngestResult summarises one ingestion batch for display.
type IngestResult struct {
	// Succeeded is the number of documents indexed.
	Succeeded int

	// Failed is the number of documents excluded.
	Failed int

	// RecordsWritten is the number of index records written.
	RecordsWritten int

	// Reports holds the per-file outcomes in input order.
	Reports []FileReport
}

// FailureReasons returns the failure messages in input order, for
// display alongside the success counts.
func (r *IngestResult) FailureReasons() []string {
	var reasons []string
	for _, rep := range r.Reports {
		if rep.Failed() {
			reasons = append(reasons, rep.FileName+": "+rep.Err.Error())
		}
	}
	return reasons
}

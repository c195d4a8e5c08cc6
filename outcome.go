package libcnb

// DetectOutcome is the result of a detect function. Build it with DetectPass or DetectFail.
type DetectOutcome struct {
	passed bool
	plan   interface{}
}

// DetectPass passes detection. plan is written to the build plan path and must be encodable as TOML.
func DetectPass(plan interface{}) DetectOutcome {
	return DetectOutcome{passed: true, plan: plan}
}

// DetectFail fails detection. Nothing is written.
func DetectFail() DetectOutcome {
	return DetectOutcome{}
}

func (o DetectOutcome) Passed() bool {
	return o.passed
}

func (o DetectOutcome) Plan() interface{} {
	return o.plan
}

type TestStatus string

const (
	TestStatusPass   TestStatus = "Pass"
	TestStatusFail   TestStatus = "Fail"
	TestStatusReady  TestStatus = "Ready"
	TestStatusIgnore TestStatus = "Ignore"
)

type TestResult struct {
	Description string     `toml:"desc"`
	Status      TestStatus `toml:"status"`
}

func NewTestResult(description string, status TestStatus) TestResult {
	return TestResult{Description: description, Status: status}
}

// TestResults is the document written by the test phase. Empty sequences are left out.
type TestResults struct {
	Passed  []TestResult `toml:"passed,omitempty"`
	Failed  []TestResult `toml:"failed,omitempty"`
	Ignored []TestResult `toml:"ignored,omitempty"`
	Status  TestStatus   `toml:"status"`
}

func NewTestResults() TestResults {
	return TestResults{
		Passed:  []TestResult{},
		Failed:  []TestResult{},
		Ignored: []TestResult{},
		Status:  TestStatusReady,
	}
}

// Add appends result to the sequence matching its status. Results with the Ready status are ignored.
func (r *TestResults) Add(result TestResult) {
	switch result.Status {
	case TestStatusPass:
		r.Passed = append(r.Passed, result)
	case TestStatusFail:
		r.Failed = append(r.Failed, result)
	case TestStatusIgnore:
		r.Ignored = append(r.Ignored, result)
	}
}

// TestOutcome is the result of a test function. Build it with TestPass or TestFail.
type TestOutcome struct {
	passed  bool
	results TestResults
}

func TestPass(results TestResults) TestOutcome {
	return TestOutcome{passed: true, results: results}
}

func TestFail(results TestResults) TestOutcome {
	return TestOutcome{results: results}
}

func (o TestOutcome) Passed() bool {
	return o.passed
}

func (o TestOutcome) Results() TestResults {
	return o.results
}

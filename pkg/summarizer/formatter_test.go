package summarizer

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestYAMLFormatter_Format(t *testing.T) {
	out := YAMLFormatter{}.Format(sampleSummary())

	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if doc["total_bytes"] != 1048576 {
		t.Errorf("total_bytes = %v", doc["total_bytes"])
	}

	settings := doc["settings"].(map[string]interface{})
	if settings["codec"] != "ffv1" || settings["delimiter"] != "__" {
		t.Errorf("unexpected settings %v", settings)
	}

	jobs := doc["jobs"].([]interface{})
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job := jobs[0].(map[string]interface{})
	want := map[string]interface{}{
		"direction":  "encode",
		"token":      "archive.tar__1280x720__1048576",
		"resolution": "1280x720",
		"elapsed_ms": 1500,
		"verified":   true,
		"sha256":     "deadbeef",
	}
	for k, v := range want {
		if job[k] != v {
			t.Errorf("job[%s] = %v, want %v", k, job[k], v)
		}
	}
	if _, ok := job["padding_bytes"]; ok {
		t.Error("zero padding should be omitted")
	}
}

func TestYAMLFormatter_NoJobs(t *testing.T) {
	out := YAMLFormatter{}.Format(NewSummary())

	var doc struct {
		Jobs []map[string]interface{} `yaml:"jobs"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Jobs) != 0 {
		t.Errorf("expected no jobs, got %v", doc.Jobs)
	}
}

func TestForPath(t *testing.T) {
	md := NewMarkdownFormatter()
	tests := []struct {
		path string
		yaml bool
	}{
		{"report.md", false},
		{"report.yaml", true},
		{"out/REPORT.YML", true},
		{Stdout, false},
		{"summary", false},
	}
	for _, tt := range tests {
		_, isYAML := ForPath(tt.path, md).(YAMLFormatter)
		if isYAML != tt.yaml {
			t.Errorf("ForPath(%q) yaml = %v, want %v", tt.path, isYAML, tt.yaml)
		}
	}
}

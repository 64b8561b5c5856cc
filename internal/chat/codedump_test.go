package chat

import "testing"

func TestLooksLikeCodeDump(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{
			name:   "empty",
			answer: "",
			want:   false,
		},
		{
			name:   "short prose",
			answer: "The server starts in main.go and listens on port 8080.",
			want:   false,
		},
		{
			name: "prose with stray keyword",
			answer: "The import process runs nightly.\n" +
				"It reads files from S3.\n" +
				"Results land in Postgres.\n" +
				"Check the runbook for details.",
			want: false,
		},
		{
			name: "fenced code block",
			answer: "Here is the function:\n```python\ndef main():\n    pass\n```\n" +
				"That is how it works.",
			want: true,
		},
		{
			name: "raw python dump",
			answer: "import os\nimport sys\n\n" +
				"def main():\n    return 0\n\n" +
				"class Handler:\n    def run(self):\n        return None\n",
			want: true,
		},
		{
			name: "config assignment dump",
			answer: "[project]\nname = \"app\"\nversion = \"1.0\"\n" +
				"dependencies = [\n    \"requests\",\n]\nauthors = [\"dev\"]\n",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksLikeCodeDump(tt.answer); got != tt.want {
				t.Errorf("LooksLikeCodeDump() = %v, want %v", got, tt.want)
			}
		})
	}
}

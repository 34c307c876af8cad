// Package prompts asks for resume entries interactively. Question text is
// stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

const questionsFile = "questions.json"

//go:embed *.json
var promptFiles embed.FS

// cache holds parsed question files keyed by filename
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves question text by filename and key, e.g. Get("questions.json", "summary").
func Get(filename, key string) (string, error) {
	questions, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	q, exists := questions[key]
	if !exists {
		return "", fmt.Errorf("question key %q not found in %s", key, filename)
	}

	return q, nil
}

// MustGet is Get for keys that ship with the binary. It panics when the key is missing.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load question: %v", err))
	}
	return prompt
}

// Format replaces {{.Key}} placeholders with values from data
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		placeholder := fmt.Sprintf("{{.%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read question file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse question file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

// ClearCache drops every cached file
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

// List returns the keys of a question file in sorted order
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// text returns the question for key in questions.json
func text(key string) string {
	return MustGet(questionsFile, key)
}

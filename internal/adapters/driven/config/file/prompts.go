package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/citewise-labs/citewise-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
// The wording of the sentinel instructions must match the values the
// answer validator recognises ("no source" and the two fallback answers).
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptAnswerSystem: `You answer questions using ONLY the provided sources. Do not use outside knowledge and do not guess.

Respond with a single JSON object and nothing else, in exactly this shape:
{"answer": "...", "source_excerpt": "...", "source_file_name": "..."}

Rules:
- "answer" holds the answer text.
- "source_excerpt" holds the verbatim passage from the sources that supports the answer.
- "source_file_name" holds the name of the file that passage came from.
- If the question is unrelated to the sources, set "answer" to "The question is unrelated to the provided documents." and set both "source_excerpt" and "source_file_name" to "no source".
- If the sources do not contain enough information to answer, set "answer" to "I cannot answer this question based solely on the provided documents." and set both "source_excerpt" and "source_file_name" to "no source".

Sources:
%s`,

	driven.PromptAnswerUser: `Question: %s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to the prompts directory under the
// config directory (~/.citewise/prompts unless CITEWISE_CONFIG_DIR is set).
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		configDir, err := ResolveConfigDir("")
		if err != nil {
			return nil, fmt.Errorf("resolving prompt directory: %w", err)
		}
		promptDir = filepath.Join(configDir, "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Citewise Prompts

This directory contains customisable prompts used when answering questions
from your documents.

## Files

- ` + "`answer_system.txt`" + ` - Answer rules, the required JSON shape, and the
  sentinel values. The ` + "`%s`" + ` placeholder receives the retrieved sources.
- ` + "`answer_user.txt`" + ` - Wraps the question. The ` + "`%s`" + ` placeholder
  receives the question text.

## Customisation

Edit either file to adjust the model's behaviour. Changes take effect on
the next question.

Keep the JSON shape and the "no source" sentinel instructions intact:
answers are validated against them, and an answer that drops them is
rejected.
`
	return os.WriteFile(path, []byte(content), 0600)
}

// Package gitstore provides a Git plumbing-based implementation of domain.Slot.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskflow/internal/domain"
	"github.com/runoshun/taskflow/internal/infra/crypto"
)

// RefNamespace is the ref namespace used for slots.
const RefNamespace = "taskflow"

// Store implements domain.Slot using Git plumbing (refs and blobs).
//
// Data structure:
//
//	refs/taskflow/
//	  <key>   → blob (task list YAML, optionally encrypted)
//
// The ref points straight at the blob, so the slot never shows up in
// branches or the working tree.
type Store struct {
	repo      *git.Repository
	encryptor *crypto.Encryptor
	key       string
	mu        sync.RWMutex
}

// Open opens the repository at repoPath, creating a bare repository when
// none exists, and returns a Store for the slot named key.
// encryptor may be nil to store plain YAML.
func Open(repoPath, key string, encryptor *crypto.Encryptor) (*Store, error) {
	repo, err := git.PlainOpen(repoPath)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(repoPath, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create repository directory: %w", mkErr)
		}
		repo, err = git.PlainInit(repoPath, true)
	}
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}

	return NewWithRepo(repo, key, encryptor), nil
}

// NewWithRepo creates a Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, key string, encryptor *crypto.Encryptor) *Store {
	return &Store{
		repo:      repo,
		key:       key,
		encryptor: encryptor,
	}
}

// RefName returns the ref holding the slot.
func (s *Store) RefName() plumbing.ReferenceName {
	return plumbing.ReferenceName("refs/" + RefNamespace + "/" + s.key)
}

// Load reads the task list. found is false if the ref does not exist.
func (s *Store) Load() ([]domain.Task, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.RefName(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get slot ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, false, fmt.Errorf("read slot: %w", err)
	}

	var tasks []domain.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, false, fmt.Errorf("%w: decode slot: %w", domain.ErrCorruptSlot, err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, true, nil
}

// Save writes the task list to a new blob and moves the ref to it.
func (s *Store) Save(tasks []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := yaml.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode slot: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.RefName(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("update slot ref: %w", err)
	}
	return nil
}

// writeBlob writes data as a blob, encrypting it when configured.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	blobData := data
	if s.encryptor != nil {
		encrypted, err := s.encryptor.Encrypt(data)
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("encrypt data: %w", err)
		}
		blobData = encrypted
	}

	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(blobData)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(blobData); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads and optionally decrypts data from a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}

	if s.encryptor != nil {
		decrypted, err := s.encryptor.Decrypt(data)
		if err != nil {
			return nil, fmt.Errorf("decrypt data: %w", err)
		}
		return decrypted, nil
	}

	return data, nil
}

// Ensure Store implements domain.Slot.
var _ domain.Slot = (*Store)(nil)

package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path"
	"sync"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
)

// EnvVarConfigKey optionally overrides the passphrase used to encrypt the config file.
const EnvVarConfigKey = constants.EnvVarPrefix + "_CONFIG_KEY"

const builtinPassphrase = "dbcloner:vp;8vJbo$7aPXD^34zxY(LUo]d4EodCP"

// EncryptedFile saves bytes AES-GCM encrypted and base64 encoded at FullPath.
// Stored passwords are obscured rather than protected from a user who can read the binary.
type EncryptedFile struct {
	Dirname  string
	FullPath string
	key      []byte
	mu       sync.Mutex
}

func NewEncryptedFile(dirName string, filename string) *EncryptedFile {
	passphrase := helper.ReadValueFromEnvWithDefault(EnvVarConfigKey, builtinPassphrase)
	key := sha256.Sum256([]byte(passphrase))
	return &EncryptedFile{Dirname: dirName, FullPath: path.Join(dirName, filename), key: key[:]}
}

// Set encrypts text and replaces the file contents.
func (f *EncryptedFile) Set(text []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sealed, err := encrypt(text, f.key)
	if err != nil {
		return err
	}
	if err = makeDir(f.Dirname); err != nil {
		return err
	}
	// Write a temp file and rename it so a failed write leaves the old config in place.
	tmp := f.FullPath + ".tmp"
	if err = ioutil.WriteFile(tmp, []byte(base64.StdEncoding.EncodeToString(sealed)), 0600); err != nil {
		return err
	}
	return os.Rename(tmp, f.FullPath)
}

// Get returns the decrypted file contents or FileNotFoundError.
func (f *EncryptedFile) Get() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !fileExists(f.FullPath) { // if the file does not exist...
		return nil, FileNotFoundError{f.FullPath}
	}
	b64, err := ioutil.ReadFile(f.FullPath)
	if err != nil {
		return nil, err
	}
	cipherText, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return nil, fmt.Errorf("config file %v is not encoded correctly: %w", f.FullPath, err)
	}
	text, err := decrypt(cipherText, f.key)
	if err != nil {
		return nil, fmt.Errorf("unable to decrypt config file %v (check %v): %w", f.FullPath, EnvVarConfigKey, err)
	}
	return text, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

func newGCM(key []byte) (cipher.AEAD, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(c)
}

// encrypt returns the nonce followed by the sealed text.
func encrypt(text []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, text, nil), nil
}

func decrypt(text []byte, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(text) < nonceSize {
		return nil, fmt.Errorf("encrypted text is too short")
	}
	nonce, cipherText := text[:nonceSize], text[nonceSize:]
	return gcm.Open(nil, nonce, cipherText, nil)
}

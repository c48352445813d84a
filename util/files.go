package util

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
)

// MD5File fingerprints a file's contents. Run logs record the digest
// of each model file so a result can be traced to the exact grammar
// that produced it.
func MD5File(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", filename)
	}
	defer file.Close()

	digest := md5.New()
	if _, err := io.Copy(digest, file); err != nil {
		return "", errors.Wrapf(err, "read %s", filename)
	}
	return fmt.Sprintf("%x", digest.Sum(nil)), nil
}

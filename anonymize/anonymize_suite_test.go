package anonymize_test

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestAnonymize(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Anonymize Suite")
}

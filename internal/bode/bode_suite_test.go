package bode_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBode(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bode Suite")
}

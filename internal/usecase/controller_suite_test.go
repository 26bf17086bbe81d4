package usecase

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestGovernorControllerBehaviour(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Governor Controller Suite")
}

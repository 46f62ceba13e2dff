package memory

import (
	"testing"

	"github.com/libra-stake/libra-bot/pkg/data/user/tests"
)

func TestUserMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}
	tests.RunTests(t, testStore, teardown)
}

package memstore

import (
	"testing"

	"github.com/cognicore/voiceprint/pkg/voiceprint/store"
	"github.com/cognicore/voiceprint/pkg/voiceprint/store/storetest"
)

func TestMemstoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}

var _ store.Store = (*Store)(nil)

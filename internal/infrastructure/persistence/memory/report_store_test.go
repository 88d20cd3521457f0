package memory_test

import (
	"testing"

	"github.com/DanielPopoola/mobile-messaging-sdk/internal/application"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/mobile-messaging-sdk/internal/infrastructure/persistence/storetest"
)

func TestReportStore(t *testing.T) {
	storetest.RunReportStoreTests(t, func(t *testing.T) application.ReportStore {
		return memory.NewReportStore()
	})
}

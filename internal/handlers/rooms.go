// internal/handlers/rooms.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/promptparty/promptparty/internal/config"
	"github.com/promptparty/promptparty/internal/relay"
	qrcode "github.com/skip2/go-qrcode"
)

// ListRoomsHandler returns the in-memory room rosters for debugging. State is
// process-local only; an empty map after a restart is expected.
func ListRoomsHandler(store *relay.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Snapshot())
	}
}

// RoomQRHandler serves a PNG QR code for a room's join URL so a phone can
// scan its way into the game. The URL points at the public frontend address,
// not this process.
func RoomQRHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Path shape: /rooms/{roomId}/qr
		rest := strings.TrimPrefix(r.URL.Path, "/rooms/")
		roomID := strings.TrimSuffix(rest, "/qr")
		if roomID == "" || roomID == rest {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		joinURL := strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/?room=" + roomID

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

package stubserver

import (
	"net/http"

	"github.com/Semicolon-Stardust/kamdhenuseva-go/internal/client/models"
)

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	var in models.DonationInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}
	switch in.Tier {
	case models.TierBronze, models.TierSilver, models.TierGold:
	default:
		writeError(w, http.StatusBadRequest, "Unknown donation tier")
		return
	}
	switch in.DonationType {
	case models.DonationOneTime, models.DonationRecurring:
	default:
		writeError(w, http.StatusBadRequest, "Unknown donation type")
		return
	}
	if in.CowID != "" {
		if _, ok := s.store.getCow(in.CowID); !ok {
			writeError(w, http.StatusNotFound, "Cow not found")
			return
		}
	}

	d := s.store.createDonation(accountFrom(r).ID, in)
	writeData(w, http.StatusCreated, d, "Donation recorded successfully")
}

func (s *Server) handleDonationHistory(w http.ResponseWriter, r *http.Request) {
	ds := s.store.donationsByUser(accountFrom(r).ID)
	if ds == nil {
		ds = []models.Donation{}
	}
	writeData(w, http.StatusOK, ds, "")
}

func (s *Server) handleAllDonations(w http.ResponseWriter, _ *http.Request) {
	ds := s.store.allDonations()
	if ds == nil {
		ds = []models.Donation{}
	}
	writeData(w, http.StatusOK, ds, "")
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Layr-Labs/airdrop-merkle-go/pkg/airdrop"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/merkle"
	"github.com/Layr-Labs/airdrop-merkle-go/pkg/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
)

const maxRequestBodyBytes = 1 << 20

// serviceError maps proof service errors to API errors.
func serviceError(err error) Error {
	switch {
	case errors.Is(err, merkle.ErrInvalidAddress):
		return ErrMalformedAddress.WithErr(err)
	case errors.Is(err, airdrop.ErrNoTree):
		return ErrTreeUnavailable
	default:
		return ErrGenericInternalServerError.WithErr(err)
	}
}

// health reports whether proofs can be served
// GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.service.HealthCheck(); err != nil {
		ErrTreeUnavailable.WithErr(err).Write(w)
		return
	}
	httpWriteOK(w)
}

// root returns the root of the served tree
// GET /root
func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.Info()
	if err != nil {
		serviceError(err).Write(w)
		return
	}
	httpWriteJSON(w, &types.RootResponse{
		Root:          info.Root.Hex(),
		Leaves:        info.Leaves,
		Depth:         info.Depth,
		OddNodePolicy: info.Policy.String(),
		Snapshot:      info.Snapshot,
	})
}

// proof returns the inclusion proof for an address. An address outside the
// allowlist gets an empty proof and eligible=false.
// GET /proof/{address}
func (s *Server) proof(w http.ResponseWriter, r *http.Request) {
	proof, err := s.service.Proof(chi.URLParam(r, AddressURLParam))
	if err != nil {
		serviceError(err).Write(w)
		return
	}

	httpWriteJSON(w, &types.ProofResponse{
		Address:  proof.Address.Hex(),
		Leaf:     common.Hash(proof.Leaf).Hex(),
		Proof:    proof.Hex(),
		Root:     common.Hash(proof.Root).Hex(),
		Eligible: proof.Eligible,
	})
}

// verify checks a proof for an address or a raw leaf
// POST /verify
func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	req := &types.VerifyRequest{}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(req); err != nil {
		ErrMalformedBody.Withf("could not decode request body: %v", err).Write(w)
		return
	}

	var leaf [32]byte
	switch {
	case req.Address != "":
		addr, err := merkle.ParseAddress(req.Address)
		if err != nil {
			ErrMalformedAddress.WithErr(err).Write(w)
			return
		}
		leaf = merkle.HashAddress(addr)
		if req.Leaf != "" {
			given, err := merkle.ParseHash(req.Leaf)
			if err != nil {
				ErrMalformedProof.Withf("leaf: %v", err).Write(w)
				return
			}
			if given != leaf {
				ErrLeafAddressMismatch.Write(w)
				return
			}
		}
	case req.Leaf != "":
		var err error
		if leaf, err = merkle.ParseHash(req.Leaf); err != nil {
			ErrMalformedProof.Withf("leaf: %v", err).Write(w)
			return
		}
	default:
		ErrMissingLeaf.Write(w)
		return
	}

	proof, err := merkle.ParseProof(req.Proof)
	if err != nil {
		ErrMalformedProof.WithErr(err).Write(w)
		return
	}

	var root [32]byte
	if req.Root != "" {
		if root, err = merkle.ParseHash(req.Root); err != nil {
			ErrMalformedProof.Withf("root: %v", err).Write(w)
			return
		}
	} else if root, err = s.service.Root(); err != nil {
		serviceError(err).Write(w)
		return
	}

	valid, err := s.service.VerifyLeaf(leaf, proof, &root)
	if err != nil {
		serviceError(err).Write(w)
		return
	}
	httpWriteJSON(w, &types.VerifyResponse{
		Valid: valid,
		Root:  common.Hash(root).Hex(),
	})
}

// eligibility returns the proof of an address and, when a contract is
// configured, whether it already claimed
// GET /eligibility/{address}
func (s *Server) eligibility(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.Eligibility(r.Context(), chi.URLParam(r, AddressURLParam))
	if err != nil {
		if errors.Is(err, merkle.ErrInvalidAddress) || errors.Is(err, airdrop.ErrNoTree) {
			serviceError(err).Write(w)
			return
		}
		s.logger.Sugar().Warnw("Failed to read claim status", "error", err)
		ErrContractUnavailable.WithErr(err).Write(w)
		return
	}

	httpWriteJSON(w, &types.EligibilityResponse{
		Address:  result.Address.Hex(),
		Eligible: result.Eligible,
		Claimed:  result.Claimed,
		Proof:    result.Hex(),
		Root:     common.Hash(result.Root).Hex(),
	})
}

// reload swaps in the active snapshot from persistence
// POST /reload
func (s *Server) reload(w http.ResponseWriter, r *http.Request) {
	if err := s.service.ReloadSnapshot(r.Context()); err != nil {
		if errors.Is(err, airdrop.ErrNoActiveSnapshot) {
			ErrResourceNotFound.WithErr(err).Write(w)
			return
		}
		s.logger.Sugar().Errorw("Failed to reload snapshot", "error", err)
		ErrReloadFailed.WithErr(err).Write(w)
		return
	}
	s.root(w, r)
}

package services

import (
	"fmt"
	"log"

	"travelgo/internal/domain"
	"travelgo/internal/domain/models"
	"travelgo/internal/mailer"
	"travelgo/internal/repositories"
	"travelgo/internal/utils"
)

// PackageRequestService handles custom package inquiries and their
// review lifecycle.
type PackageRequestService struct {
	Requests  repositories.PackageRequestRepository
	Packages  repositories.PackageRepository
	Travelers repositories.TravelerRepository

	Mail      mailer.Sender
	RequestID string
}

// Create records a traveler's inquiry and sends a best-effort
// acknowledgement email.
func (s PackageRequestService) Create(in repositories.NewPackageRequest) (models.PackageRequestDetail, error) {
	if _, err := s.Travelers.GetByID(in.TravelerID); err != nil {
		return models.PackageRequestDetail{}, err
	}
	if in.NoOfDays < 1 {
		return models.PackageRequestDetail{}, domain.ValidationError{Field: "no_of_days", Msg: "must be at least 1"}
	}

	requestID, err := s.Requests.Create(in)
	if err != nil {
		return models.PackageRequestDetail{}, err
	}

	detail, err := s.Requests.GetDetail(requestID)
	if err != nil {
		return models.PackageRequestDetail{}, err
	}

	if s.Mail != nil {
		subject, body := mailer.PackageRequestAckMail(detail)
		if err := s.Mail.Send(detail.TravelerName, detail.TravelerEmail, subject, body); err != nil {
			log.Printf("package request %s: acknowledgement email failed: %v", requestID, err)
		}
	}

	utils.LogEvent(s.RequestID, "package_request", "create", "request_id="+requestID)
	return detail, nil
}

// Approve links the request to an existing package and marks it
// approved. A request that is already approved stays linked to its
// original package.
func (s PackageRequestService) Approve(requestID, packageID, adminNotes string) (models.PackageRequestDetail, error) {
	if _, err := s.Requests.GetDetail(requestID); err != nil {
		return models.PackageRequestDetail{}, err
	}
	if _, err := s.Packages.GetByID(packageID); err != nil {
		return models.PackageRequestDetail{}, err
	}

	won, err := s.Requests.Approve(requestID, packageID, adminNotes)
	if err != nil {
		return models.PackageRequestDetail{}, err
	}
	if !won {
		return models.PackageRequestDetail{}, domain.ConflictError{Resource: "package_request", Msg: "already approved"}
	}

	utils.LogEvent(s.RequestID, "package_request", "approve",
		fmt.Sprintf("request_id=%s package_id=%s", requestID, packageID))
	return s.Requests.GetDetail(requestID)
}

// Reject marks the request rejected with the reviewer's notes.
func (s PackageRequestService) Reject(requestID, adminNotes string) (models.PackageRequestDetail, error) {
	if _, err := s.Requests.GetDetail(requestID); err != nil {
		return models.PackageRequestDetail{}, err
	}

	won, err := s.Requests.Reject(requestID, adminNotes)
	if err != nil {
		return models.PackageRequestDetail{}, err
	}
	if !won {
		return models.PackageRequestDetail{}, domain.ConflictError{Resource: "package_request", Msg: "already rejected"}
	}

	utils.LogEvent(s.RequestID, "package_request", "reject", "request_id="+requestID)
	return s.Requests.GetDetail(requestID)
}

// UpdateStatus moves the request between review states. Approval and
// rejection have dedicated operations and are not reachable here.
func (s PackageRequestService) UpdateStatus(requestID, status, adminNotes string) (models.PackageRequestDetail, error) {
	if !models.ValidRequestStatus(status) {
		return models.PackageRequestDetail{}, domain.ValidationError{Field: "status", Msg: "unknown request status"}
	}
	if status == models.RequestApproved || status == models.RequestRejected {
		return models.PackageRequestDetail{}, domain.ValidationError{Field: "status", Msg: "use the approve or reject endpoint"}
	}

	if _, err := s.Requests.GetDetail(requestID); err != nil {
		return models.PackageRequestDetail{}, err
	}
	if err := s.Requests.UpdateStatus(requestID, status, adminNotes); err != nil {
		return models.PackageRequestDetail{}, err
	}

	utils.LogEvent(s.RequestID, "package_request", "update_status",
		fmt.Sprintf("request_id=%s status=%s", requestID, status))
	return s.Requests.GetDetail(requestID)
}

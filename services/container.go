package services

import (
	"github.com/Stevekk11/PersonalCloud/repositories"
	"github.com/Stevekk11/PersonalCloud/storage"
)

type Container struct {
	Account  AccountService
	Document DocumentService
	Capacity CapacityService
}

func NewContainer(repos repositories.Container, blobs *storage.BlobStore) *Container {
	return &Container{
		Account:  NewAccountService(repos.Accounts, repos.Documents),
		Document: NewDocumentService(repos.Accounts, repos.Documents, blobs),
		Capacity: NewCapacityService(repos.TxManager, repos.Accounts, blobs.AvailableBytes),
	}
}

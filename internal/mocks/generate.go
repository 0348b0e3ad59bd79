package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Storage --dir ../domain/account --output domain/account --outpkg accountmock --filename storage_mock.go

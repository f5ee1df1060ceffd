package mocks

//go:generate mockery --name Querier --srcpkg github.com/aevon-lab/experiment-tracker/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/match --output domain/match --outpkg matchmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name FixtureSource --dir ../domain/match --output domain/match --outpkg matchmock --filename fixture_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/standing --output domain/standing --outpkg standingmock --filename provider_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/news --output domain/news --outpkg newsmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/highlight --output domain/highlight --outpkg highlightmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Predictor --dir ../domain/prediction --output domain/prediction --outpkg predictionmock --filename predictor_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go

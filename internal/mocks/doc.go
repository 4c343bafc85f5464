// Package mocks provides function-field mocks of service interfaces for
// handler and middleware tests.
//
// Each mock calls the matching Fn field when set and otherwise returns its
// default values:
//
//	svc := &mocks.MockCardService{
//	    GetCardFn: func(ctx context.Context, t domain.CardType, id int64) (*domain.Card, error) {
//	        return nil, store.ErrCardNotFound
//	    },
//	}
package mocks

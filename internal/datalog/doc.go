// Package datalog holds the small piece of query-language vocabulary that the
// rest of ednq needs: the keywords that introduce query sections and the
// prose labels a model tends to put in front of a query.
//
// This package does not parse queries. It names things so that the Writer
// (which lays query vectors out by section) and the Extractor (which bounds
// the projection clause and salvages unbracketed model output) agree on a
// single vocabulary.
//
// Query forms:
//
//	[:find ?e ?name :in $ ?age :where [?e :person/age ?age] [?e :person/name ?name]]
//	{:find [?e] :where [[?e :db/id _]]}
//
// The projection ("find") clause ends at the next section keyword.
package datalog

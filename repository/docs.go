// Package repository keeps the records of one entity type as an ordered list in memory
// and writes the whole list to a Store after every change.
//
// A Repository offers a whole set of methods already out of the box. That might not be enough, though.
// It is possible to overwrite an existing method to change the behaviour as well as extend the Repository
// with new methods. There is an example for it.
//
// The Store decides about the format on disc: BinaryStore writes the flat length prefixed
// record format of package codec, JSONStore and YAMLStore are meant for exports.
// There are no transactions: a failing Store leaves the changed list in memory,
// the next Load brings back what is on disc.
package repository

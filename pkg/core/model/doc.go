// Package model defines the value types shared by the packing core: SKUs,
// boxes, order books, container contents and stage outputs.
//
// All types are plain values. [OrderBook] methods never mutate the receiver;
// they return a new book, so a stage's input stays valid after the stage runs.
package model

// Package geometry decomposes an ice sheet's floating margin into the masks
// a sub-shelf melt parameterization works on.
//
// From per-cell classification (grounded, floating, ice-free ocean, ice-free
// land) and bed elevation it computes, in this order:
//
//  1. the ice-rises mask: open water, ice rises, continental ice, floating ice;
//  2. the continental-shelf mask: shallow ice-free bed connected to the continent;
//  3. the ice-shelf mask: one id per shelf, shelves bridged by a rise share an id;
//  4. the ocean mask: open ocean versus isolated pools of ice-free water;
//  5. the sub-glacial lake mask: floating ice or water cut off from the open ocean;
//  6. grid-step distances from the grounding line and from the calving front;
//  7. the box mask: a box number per shelf cell, 1 at the grounding line.
//
// Geometry runs the whole sequence in Update. Builder, the distance functions
// and ComputeBoxMask are usable on their own.
//
// Every exported operation is collective over the grid's comm group and must
// be called by all ranks in the same order.
//
// Distances are 4-connected graph distances, not Euclidean distances.
package geometry

/*
Package framedebug writes debug representations of styled trees, box trees
and display lists.

Text dumps list one node per line, indented by tree depth. Box tree dumps
show the box type, the computed display and the four rectangles of every
box. ToGraphViz renders a box tree in the DOT format of Graphviz.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package framedebug

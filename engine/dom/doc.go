/*
Package dom defines the view the layout engine has on documents.

The engine does not own a document object model. Markup is parsed by an
input package (see package input/html) and presented to the engine through
interface Node. Nodes are read-only to the engine; node identity has to be
stable for as long as a document is laid out, as styles and boxes are linked
to nodes by identity.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom
